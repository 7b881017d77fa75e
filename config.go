package folio

import (
	"time"

	"github.com/eringen/folio/toc"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Folio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Language string // html lang and RSS language (default "ko")
	Locale   string // Date locale (default Language)
	Timezone string // Date timezone (default "Asia/Seoul")

	Addr       string // Listen address (default ":3000")
	ArticleDir string // Article sources (default "content")
	CraftDir   string // Craft sources (default "craft")
	StaticDir  string // Static assets served under /public (default "public")

	SessionSecret string // Preference cookie secret; random per process when empty
	CookieSecure  bool   // Set true for HTTPS

	ContentTTL time.Duration // Content reload interval (default 5min, negative never reloads)
	CoverWidth int           // Cover thumbnail width in pixels (default 640)

	TOCRange toc.LevelRange // Heading levels in the table of contents (default 2..6)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Folio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Language == "" {
		c.Language = "ko"
	}
	if c.Locale == "" {
		c.Locale = c.Language
	}
	if c.Timezone == "" {
		c.Timezone = "Asia/Seoul"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ArticleDir == "" {
		c.ArticleDir = "content"
	}
	if c.CraftDir == "" {
		c.CraftDir = "craft"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ContentTTL == 0 {
		c.ContentTTL = 5 * time.Minute
	}
	if c.CoverWidth == 0 {
		c.CoverWidth = 640
	}
	if c.TOCRange == (toc.LevelRange{}) {
		c.TOCRange = toc.DefaultRange
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides SiteConfig.StaticDir.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithClock replaces time.Now for feed and sitemap dates and relative
// date strings.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
