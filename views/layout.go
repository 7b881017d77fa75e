// Package views holds the default page components. Each component is a
// templ.ComponentFunc so sites can swap any of them through folio.ViewFuncs.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (w *htmlWriter) raw(ss ...string) {
	for _, s := range ss {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *htmlWriter) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *htmlWriter) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *htmlWriter) render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func pageTitle(p Page) string {
	if p.Meta.Title == "" || p.Meta.Title == p.Site.Name {
		return p.Site.Name
	}
	return p.Meta.Title + " | " + p.Site.Name
}

// Layout wraps body in the site chrome.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw("<!doctype html><html")
		w.attr("lang", p.Site.Language)
		if cls := themeClass(p.Prefs.Theme); cls != "" {
			w.attr("class", cls)
		}
		w.attr("data-theme", p.Prefs.Theme)
		w.attr("data-sound", p.Prefs.Sound)
		w.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw("<title>")
		w.text(pageTitle(p))
		w.raw("</title>")
		writeMeta(w, p)
		w.raw(`<link rel="alternate" type="application/rss+xml"`)
		w.attr("title", p.Site.Name)
		w.attr("href", buildURL(p.Site.URL)+"rss.xml")
		w.raw(">")
		w.raw(`<link rel="icon" type="image/svg+xml" href="/favicon.svg">`)
		w.raw(`<link rel="stylesheet" href="/public/styles.css">`)
		if p.JSONLD != "" {
			w.raw(`<script type="application/ld+json">`, p.JSONLD, "</script>")
		}
		w.raw("</head><body>")
		writeHeader(w, p)
		w.raw("<main>")
		w.render(ctx, body)
		w.raw("</main><footer>")
		if p.Site.Author != "" {
			w.raw("<span>&copy; ")
			w.text(p.Site.Author)
			w.raw("</span> ")
		}
		w.raw(`<a href="/rss.xml">RSS</a></footer></body></html>`)
		return w.err
	})
}

func writeMeta(w *htmlWriter, p Page) {
	desc := p.Meta.Description
	if desc == "" {
		desc = p.Site.Description
	}
	w.raw(`<meta name="description"`)
	w.attr("content", desc)
	w.raw(">")
	if p.Meta.URL != "" {
		w.raw(`<link rel="canonical"`)
		w.attr("href", p.Meta.URL)
		w.raw(`><meta property="og:url"`)
		w.attr("content", p.Meta.URL)
		w.raw(">")
	}
	w.raw(`<meta property="og:title"`)
	w.attr("content", pageTitle(p))
	w.raw(`><meta property="og:description"`)
	w.attr("content", desc)
	w.raw(`><meta property="og:site_name"`)
	w.attr("content", p.Site.Name)
	w.raw(">")
	ogType := p.Meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	w.raw(`<meta property="og:type"`)
	w.attr("content", ogType)
	w.raw(">")
	if p.Meta.Image != "" {
		w.raw(`<meta property="og:image"`)
		w.attr("content", p.Meta.Image)
		w.raw(">")
	}
}

func writeHeader(w *htmlWriter, p Page) {
	w.raw(`<header class="site-header"><nav class="site-nav"><a href="/" class="site-name">`)
	w.text(p.Site.Name)
	w.raw(`</a><a href="/article/">Article</a><a href="/craft/">Craft</a></nav>`)

	w.raw(`<form method="post" action="/preferences/theme/" class="theme-switcher">`)
	writeHidden(w, p)
	for _, theme := range []string{"light", "dark", "system"} {
		w.raw(`<button type="submit" name="theme"`)
		w.attr("value", theme)
		if theme == p.Prefs.Theme {
			w.raw(` aria-pressed="true"`)
		} else {
			w.raw(` aria-pressed="false"`)
		}
		w.raw(">")
		w.text(theme)
		w.raw("</button>")
	}
	w.raw("</form>")

	next, label := "off", "Sound on"
	if p.Prefs.Sound == "off" {
		next, label = "on", "Sound off"
	}
	w.raw(`<form method="post" action="/preferences/sound/" class="sound-switcher">`)
	writeHidden(w, p)
	w.raw(`<button type="submit" name="sound"`)
	w.attr("value", next)
	w.raw(">")
	w.text(label)
	w.raw("</button></form></header>")
}

func writeHidden(w *htmlWriter, p Page) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", p.CSRFToken)
	w.raw(`><input type="hidden" name="next"`)
	w.attr("value", p.Path)
	w.raw(">")
}
