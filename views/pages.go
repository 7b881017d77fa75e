package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/toc"
)

// Home lists the newest entries of each collection.
func Home(p Page, sections []Section) templ.Component {
	return Layout(p, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw(`<section class="intro"><h1>`)
		w.text(p.Site.Name)
		w.raw("</h1>")
		if p.Site.Description != "" {
			w.raw("<p>")
			w.text(p.Site.Description)
			w.raw("</p>")
		}
		w.raw("</section>")
		for _, s := range sections {
			w.raw(`<section class="collection"`)
			w.attr("data-kind", s.Kind)
			w.raw("><h2><a")
			w.attr("href", s.Href)
			w.raw(">")
			w.text(s.Title)
			w.raw("</a></h2>")
			writeItems(w, s.Items)
			w.raw("</section>")
		}
		return w.err
	}))
}

// Index lists one collection with a category filter.
func Index(p Page, l ListPage) templ.Component {
	return Layout(p, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw(`<section class="collection"`)
		w.attr("data-kind", l.Kind)
		w.raw("><h1>")
		w.text(l.Title)
		w.raw("</h1>")
		if len(l.Categories) > 1 {
			w.raw(`<nav class="categories"><a`)
			w.attr("href", "/"+l.Kind+"/")
			w.attr("class", CategoryClass(l.Active == ""))
			w.raw(">All</a>")
			for _, c := range l.Categories {
				w.raw("<a")
				w.attr("href", "/"+l.Kind+"/?category="+PathEscape(c))
				w.attr("class", CategoryClass(c == l.Active))
				w.raw(">")
				w.text(CategoryLabel(c, p.Site.Language))
				w.raw("</a>")
			}
			w.raw("</nav>")
		}
		writeItems(w, l.Items)
		w.raw("</section>")
		return w.err
	}))
}

func writeItems(w *htmlWriter, items []content.DisplayItem) {
	if len(items) == 0 {
		w.raw(`<p class="empty">Nothing here yet.</p>`)
		return
	}
	w.raw(`<ul class="items">`)
	for _, it := range items {
		w.raw(`<li><a class="item"`)
		w.attr("href", it.Href)
		w.raw(">")
		if it.Image != "" {
			w.raw(`<img loading="lazy" decoding="async" alt=""`)
			w.attr("src", CoverURL(it.Href, it.Image))
			w.raw(">")
		}
		w.raw(`<span class="shuffle name">`)
		w.text(it.Name)
		w.raw(`</span><span class="summary">`)
		w.text(it.Summary)
		w.raw(`</span><time`)
		w.attr("datetime", it.PublishedAt)
		w.raw(">")
		w.text(it.PublishedAt)
		w.raw("</time></a></li>")
	}
	w.raw("</ul>")
}

// Document renders one article or craft with its table of contents.
func Document(p Page, d DocumentPage) templ.Component {
	return Layout(p, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		meta := d.Document.Metadata
		w.raw(`<div class="document"`)
		w.attr("data-kind", d.Kind)
		w.raw("><header><h1>")
		w.text(meta.Title)
		w.raw(`</h1><p class="byline"><time`)
		w.attr("datetime", meta.PublishedAt)
		w.raw(">")
		w.text(d.PublishedAt)
		w.raw(`</time> <a class="category"`)
		w.attr("href", "/"+d.Kind+"/?category="+PathEscape(meta.Category))
		w.raw(">")
		w.text(CategoryLabel(meta.Category, p.Site.Language))
		w.raw("</a></p>")
		if d.CoverURL != "" {
			w.raw(`<img class="cover" fetchpriority="high" decoding="async" alt=""`)
			w.attr("src", d.CoverURL)
			w.raw(">")
		}
		w.raw("</header>")

		if len(d.Outline) > 0 {
			w.render(ctx, TableOfContents(d.Outline))
		}
		w.raw("<article")
		w.attr("id", ContentContainerID)
		w.raw(">")
		w.raw(d.Body)
		w.raw("</article>")

		if len(d.Related) > 0 {
			w.raw(`<aside class="related"><h2>More in `)
			w.text(CategoryLabel(meta.Category, p.Site.Language))
			w.raw("</h2>")
			writeItems(w, d.Related)
			w.raw("</aside>")
		}
		w.raw("</div>")
		if d.JSONLD != "" {
			w.raw(`<script type="application/ld+json">`, d.JSONLD, "</script>")
		}
		w.raw(`<script src="/public/wasm_exec.js" defer></script><script src="/public/tocspy.js" defer></script>`)
		return w.err
	}))
}

// TableOfContents renders the outline inside the sticky navigation the
// scroll tracker measures against.
func TableOfContents(items []*toc.MenuItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw(`<nav class="toc-navbar" aria-label="Table of contents"><div class="toc-marker" style="top:-12px;opacity:0"></div>`)
		writeOutline(w, items)
		w.raw("</nav>")
		return w.err
	})
}

func writeOutline(w *htmlWriter, items []*toc.MenuItem) {
	w.raw("<ul>")
	for _, it := range items {
		w.raw("<li><a")
		w.attr("href", it.Link)
		w.raw(">")
		w.text(it.Title)
		w.raw("</a>")
		if len(it.Children) > 0 {
			writeOutline(w, it.Children)
		}
		w.raw("</li>")
	}
	w.raw("</ul>")
}

// NotFound is a standalone 404 page.
func NotFound() templ.Component {
	return errorPage("404", "Page not found", "The page you are looking for does not exist.")
}

// ServerError is a standalone 500 page.
func ServerError() templ.Component {
	return errorPage("500", "Something went wrong", "Please try again in a moment.")
}

func errorPage(code, title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw(`<!doctype html><html><head><meta charset="utf-8"><title>`)
		w.text(title)
		w.raw(`</title><link rel="stylesheet" href="/public/styles.css"></head><body><main class="error"><p class="code">`)
		w.text(code)
		w.raw("</p><h1>")
		w.text(title)
		w.raw("</h1><p>")
		w.text(message)
		w.raw(`</p><a href="/">Home</a></main></body></html>`)
		return w.err
	})
}
