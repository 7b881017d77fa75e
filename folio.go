// Package folio is a personal blog and portfolio engine built with Go, Echo,
// and templ. It serves two collections of front-matter documents, articles
// and crafts, read from disk, together with RSS, a sitemap, per-document
// tables of contents and reader preferences.
//
// Sites may replace any page component through the ViewFuncs struct; the
// views package provides the defaults.
package folio

import (
	"context"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/dates"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templ components the handlers render. Nil fields fall
// back to the views package.
type ViewFuncs struct {
	Home        func(p views.Page, sections []views.Section) templ.Component
	Index       func(p views.Page, list views.ListPage) templ.Component
	Document    func(p views.Page, doc views.DocumentPage) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Home == nil {
		v.Home = views.Home
	}
	if v.Index == nil {
		v.Index = views.Index
	}
	if v.Document == nil {
		v.Document = views.Document
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central folio application. It wires together the content
// caches, handlers, middleware, and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Articles *ContentCache
	Crafts   *ContentCache
	Views    ViewFuncs
	Dates    *dates.Formatter

	limiter      *RateLimiter
	covers       coverCache
	customRoutes []func(*App)
	now          func() time.Time

	initOnce sync.Once
	initErr  error
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	views.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init loads both collections and registers middleware and routes. Content
// errors surface here so a broken document stops the site from starting.
// Start calls Init; it only runs once.
func (a *App) Init() error {
	a.initOnce.Do(func() {
		a.initErr = a.init()
	})
	return a.initErr
}

func (a *App) init() error {
	if a.Config.SessionSecret == "" {
		a.Config.SessionSecret = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		a.Echo.Logger.Warn("folio: SessionSecret is not set; reader preferences reset on restart")
	}

	formatter, err := dates.New(a.Config.Locale, a.Config.Timezone, "")
	if err != nil {
		return fmt.Errorf("folio: init dates: %w", err)
	}
	a.Dates = formatter.WithClock(a.now)
	if want := strings.ToLower(a.Config.Locale); !strings.HasPrefix(want, a.Dates.Locale()) {
		a.Echo.Logger.Warnf("folio: date locale %q is not supported; using %q", a.Config.Locale, a.Dates.Locale())
	}

	logOpt := content.WithLogger(a.Echo.Logger)
	a.Articles = NewContentCache(a.Config.ArticleDir, a.Config.ContentTTL, a.Config.TOCRange, logOpt)
	a.Crafts = NewContentCache(a.Config.CraftDir, a.Config.ContentTTL, a.Config.TOCRange, logOpt)
	for _, k := range Kinds {
		if _, err := a.collection(k).Processor(); err != nil {
			return fmt.Errorf("folio: load %s: %w", k, err)
		}
	}

	a.limiter = NewRateLimiter(10, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	a.Close()
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served under /public/ ahead of the site's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/tocspy.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	for _, k := range Kinds {
		e.GET("/"+string(k)+"/", a.handleIndex(k))
		e.GET("/"+string(k)+"/:slug/", a.handleDocument(k))
	}
	e.GET("/covers/:kind/:file", a.handleCover)

	e.GET("/api/toc/:kind/:slug", a.handleTOC)
	e.GET("/api/toc/:kind/:slug/", a.handleTOC)
	e.GET("/playground/shuffle-letters/", a.handleShuffle)

	e.POST("/preferences/theme/", a.handleTheme)
	e.POST("/preferences/sound/", a.handleSound)
}

func (a *App) collection(k Kind) *ContentCache {
	if k == KindCraft {
		return a.Crafts
	}
	return a.Articles
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	return nil
}
