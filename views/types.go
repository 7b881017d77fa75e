package views

import (
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/toc"
)

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
	Language    string // html lang attribute
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// Preferences are the reader's saved display choices.
type Preferences struct {
	Theme string // light, dark or system
	Sound string // on or off
}

// Page is what every full-page template receives.
type Page struct {
	Site      SiteConfig
	Meta      PageMeta
	Prefs     Preferences
	CSRFToken string
	Path      string // request path, used to return after a preference change
	JSONLD    string // site-level structured data, emitted in <head>
}

// Section is one block of the home page.
type Section struct {
	Kind  string
	Title string
	Href  string
	Items []content.DisplayItem
}

// ListPage is a collection index.
type ListPage struct {
	Kind       string
	Title      string
	Items      []content.DisplayItem
	Categories []string
	Active     string
}

// DocumentPage is a single article or craft.
type DocumentPage struct {
	Kind        string
	Document    content.Document
	PublishedAt string
	Body        string // rendered HTML
	Outline     []*toc.MenuItem
	Related     []content.DisplayItem
	JSONLD      string
	CoverURL    string
}
