package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

const reloadDelay = 300 * time.Millisecond

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site",
	Long: `serve loads both collections, fails on any invalid document, and serves
the site. With --watch, edits under the content directories are picked up
without waiting for the content TTL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := folio.New(siteCfg, folio.ViewFuncs{})
		if err := app.Init(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveWatch {
			watcher, err := watchContent(app)
			if err != nil {
				return err
			}
			defer watcher.Close()
		}

		errc := make(chan error, 1)
		go func() {
			errc <- app.Start()
		}()

		select {
		case err := <-errc:
			app.Close()
			return err
		case <-ctx.Done():
		}
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides addr in folio.yaml)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload content when files change")
	rootCmd.AddCommand(serveCmd)
}

// watchContent invalidates a collection shortly after any file below its
// directory changes. New subdirectories are watched as they appear.
func watchContent(app *folio.App) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := map[string]*folio.ContentCache{
		filepath.Clean(app.Config.ArticleDir): app.Articles,
		filepath.Clean(app.Config.CraftDir):   app.Crafts,
	}
	for dir := range dirs {
		if err := addRecursive(watcher, dir); err != nil {
			logger.Warnf("not watching %s: %v", dir, err)
		}
	}

	timers := make(map[*folio.ContentCache]*time.Timer)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Chmod) {
					continue
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addRecursive(watcher, event.Name)
					}
				}
				cache := owner(dirs, event.Name)
				if cache == nil {
					continue
				}
				if t := timers[cache]; t != nil {
					t.Stop()
				}
				name := event.Name
				timers[cache] = time.AfterFunc(reloadDelay, func() {
					cache.Invalidate()
					if _, err := cache.Processor(); err != nil {
						logger.Errorf("reload after %s: %v", name, err)
						return
					}
					logger.Infof("reloaded content after %s", name)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("watcher: %v", err)
			}
		}
	}()
	return watcher, nil
}

func owner(dirs map[string]*folio.ContentCache, path string) *folio.ContentCache {
	for dir, cache := range dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return cache
		}
	}
	return nil
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return err
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
