package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/toc"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func testPage() Page {
	return Page{
		Site:      SiteConfig{Name: "Folio", URL: "https://example.com", Description: "notes", Author: "Kim", Language: "en"},
		Meta:      PageMeta{Title: "Hello <World>", URL: "https://example.com/article/hello/"},
		Prefs:     Preferences{Theme: "dark", Sound: "off"},
		CSRFToken: "tok",
		Path:      "/article/hello/",
	}
}

func TestLayoutHead(t *testing.T) {
	out := render(t, Home(testPage(), nil))
	for _, want := range []string{
		`<html lang="en" class="dark" data-theme="dark" data-sound="off">`,
		"<title>Hello &lt;World&gt; | Folio</title>",
		`<link rel="canonical" href="https://example.com/article/hello/">`,
		`href="https://example.com/rss.xml"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="next" value="/article/hello/">`,
		`<button type="submit" name="sound" value="on">Sound off</button>`,
		"&copy; Kim",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q", want)
		}
	}
	if strings.Contains(out, "application/ld+json") {
		t.Error("layout emitted JSON-LD for a page without any")
	}
}

func TestLayoutJSONLD(t *testing.T) {
	p := testPage()
	p.JSONLD = `{"@type":"WebSite"}`
	out := render(t, Home(p, nil))
	want := `<script type="application/ld+json">{"@type":"WebSite"}</script></head>`
	if !strings.Contains(out, want) {
		t.Errorf("layout missing %q", want)
	}
}

func TestHomeSections(t *testing.T) {
	sections := []Section{
		{Kind: "article", Title: "Article", Href: "/article/", Items: []content.DisplayItem{
			{Name: "First", Summary: "one", Href: "/article/first", PublishedAt: "24.01.05"},
		}},
		{Kind: "craft", Title: "Craft", Href: "/craft/"},
	}
	out := render(t, Home(testPage(), sections))
	if !strings.Contains(out, `<a class="item" href="/article/first">`) {
		t.Error("home missing the article item")
	}
	if !strings.Contains(out, `<time datetime="24.01.05">24.01.05</time>`) {
		t.Error("home missing the formatted date")
	}
	if !strings.Contains(out, `<section class="collection" data-kind="craft">`) || !strings.Contains(out, "Nothing here yet.") {
		t.Error("empty craft section not rendered")
	}
}

func TestIndexCategoryNav(t *testing.T) {
	list := ListPage{Kind: "article", Title: "Article", Categories: []string{"go", "web-dev"}, Active: "web-dev"}
	out := render(t, Index(testPage(), list))
	if !strings.Contains(out, `href="/article/?category=web-dev"`) {
		t.Error("category link missing")
	}
	if !strings.Contains(out, ">Web Dev</a>") {
		t.Error("category label not title-cased")
	}
	if !strings.Contains(out, CategoryClass(true)+`">Web Dev`) {
		t.Error("active category not highlighted")
	}

	list.Categories = []string{"go"}
	if out := render(t, Index(testPage(), list)); strings.Contains(out, `class="categories"`) {
		t.Error("category nav rendered for a single category")
	}
}

func TestDocumentWithOutline(t *testing.T) {
	doc := content.Document{
		Slug:     "hello",
		Metadata: content.Metadata{Title: "Hello", PublishedAt: "2024-01-05", Category: "go"},
	}
	outline := toc.BuildOutline([]toc.Heading{
		{Level: 2, ID: "setup", Title: "Setup"},
		{Level: 3, ID: "install", Title: "Install"},
		{Level: 2, ID: "faq", Title: "FAQ"},
	})
	out := render(t, Document(testPage(), DocumentPage{
		Kind:        "article",
		Document:    doc,
		PublishedAt: "Jan 05, 2024",
		Body:        `<h2 id="setup">Setup</h2>`,
		Outline:     outline,
		JSONLD:      `{"@type":"BlogPosting"}`,
		CoverURL:    "/covers/article/hello.jpg",
	}))
	for _, want := range []string{
		`<div class="toc-marker" style="top:-12px;opacity:0"></div>`,
		`<ul><li><a href="#setup">Setup</a><ul><li><a href="#install">Install</a></li></ul></li><li><a href="#faq">FAQ</a></li></ul>`,
		`<article id="folio-doc"><h2 id="setup">Setup</h2></article>`,
		`<script type="application/ld+json">{"@type":"BlogPosting"}</script>`,
		`src="/covers/article/hello.jpg"`,
		`<time datetime="2024-01-05">Jan 05, 2024</time>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestDocumentWithoutOutline(t *testing.T) {
	out := render(t, Document(testPage(), DocumentPage{Kind: "craft", Body: "<p>hi</p>"}))
	if strings.Contains(out, "toc-navbar") {
		t.Error("table of contents rendered for a document without headings")
	}
}

func TestErrorPages(t *testing.T) {
	if out := render(t, NotFound()); !strings.Contains(out, "Page not found") {
		t.Error("NotFound missing title")
	}
	if out := render(t, ServerError()); !strings.Contains(out, "Something went wrong") {
		t.Error("ServerError missing title")
	}
}

func TestCoverURL(t *testing.T) {
	tests := []struct {
		href, image, want string
	}{
		{"/article/hello", "/public/images/a.png", "/covers/article/hello.jpg"},
		{"/craft/lamp/", "/public/lamp.jpg", "/covers/craft/lamp.jpg"},
		{"/article/hello", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
	}
	for _, tt := range tests {
		if got := CoverURL(tt.href, tt.image); got != tt.want {
			t.Errorf("CoverURL(%q, %q) = %q, want %q", tt.href, tt.image, got, tt.want)
		}
	}
}
