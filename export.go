package folio

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
)

// ExportRoutes lists every GET route a static copy of the site needs: the
// pages of both collections, feeds, and cover thumbnails.
func (a *App) ExportRoutes() ([]string, error) {
	routes := []string{"/", "/feed.xml", "/rss.xml", "/sitemap.xml", "/robots.txt", "/favicon.svg", "/public/tocspy.js"}
	for _, k := range Kinds {
		docs, err := a.collection(k).Processor()
		if err != nil {
			return nil, err
		}
		routes = append(routes, "/"+string(k)+"/")
		for _, d := range docs.SortByDateDesc().Articles() {
			routes = append(routes, "/"+string(k)+"/"+d.Slug+"/")
			if src, ok := a.staticPath(d.Metadata.Image); ok && fileExists(src) {
				routes = append(routes, "/covers/"+string(k)+"/"+d.Slug+".jpg")
			}
		}
	}
	return routes, nil
}

// Export renders every route through the app's own handler chain and writes
// the responses below outDir, then copies the static dir to outDir/public.
// Directory routes become index.html files.
func (a *App) Export(ctx context.Context, outDir string) error {
	if err := a.Init(); err != nil {
		return err
	}
	routes, err := a.ExportRoutes()
	if err != nil {
		return err
	}
	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.exportRoute(route, outDir); err != nil {
			return err
		}
	}
	if err := a.exportNotFound(outDir); err != nil {
		return err
	}
	return copyDir(a.Config.StaticDir, filepath.Join(outDir, "public"))
}

func (a *App) exportRoute(route, outDir string) error {
	req := httptest.NewRequest(http.MethodGet, route, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return fmt.Errorf("folio: export %s: status %d", route, rec.Code)
	}
	return writeFile(exportPath(outDir, route), rec.Body.Bytes())
}

func (a *App) exportNotFound(outDir string) error {
	req := httptest.NewRequest(http.MethodGet, "/404/", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return writeFile(filepath.Join(outDir, "404.html"), rec.Body.Bytes())
}

func exportPath(outDir, route string) string {
	p := filepath.FromSlash(strings.TrimPrefix(route, "/"))
	if route == "/" || strings.HasSuffix(route, "/") {
		p = filepath.Join(p, "index.html")
	}
	return filepath.Join(outDir, p)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// copyDir copies src into dst. A missing src is not an error.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
