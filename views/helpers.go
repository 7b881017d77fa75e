package views

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/toc"
)

// ContentContainerID wraps rendered document bodies. The table of contents
// resolves headings inside it.
const ContentContainerID = toc.DefaultContainerID

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// CategoryLabel title-cases a category for display in the site language.
func CategoryLabel(category, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return cases.Title(tag).String(strings.ReplaceAll(category, "-", " "))
}

// CategoryClass returns CSS classes for a category pill, with active variant.
func CategoryClass(active bool) string {
	base := "inline-flex items-center rounded border px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] transition"
	if active {
		base += " bg-foreground text-background"
	}
	return base
}

// CoverURL returns the thumbnail route for a list item whose image lives
// under /public/, or the image itself otherwise.
func CoverURL(href, image string) string {
	if !strings.HasPrefix(image, "/public/") {
		return image
	}
	return "/covers" + strings.TrimSuffix(href, "/") + ".jpg"
}

func themeClass(theme string) string {
	switch theme {
	case "dark":
		return "dark"
	case "light":
		return "light"
	}
	return ""
}
