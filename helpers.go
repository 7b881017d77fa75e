package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// Related returns up to n other documents in current's category, newest first.
func Related(current content.Document, docs content.Processor, n int) content.Processor {
	return docs.
		Filter(func(d content.Document) bool {
			return d.Slug != current.Slug && d.Metadata.Category == current.Metadata.Category
		}).
		SortByDateDesc().
		Limit(n)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
		"inLanguage":  cfg.Language,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// DocumentJsonLD returns a JSON-LD string for a BlogPosting schema.
func DocumentJsonLD(doc content.Document, kind Kind, cfg SiteConfig) string {
	docURL := BuildURL(cfg.URL, string(kind), doc.Slug)
	description := doc.Metadata.Description
	if description == "" {
		description = doc.Metadata.Summary
	}
	data := map[string]interface{}{
		"@context":       "https://schema.org",
		"@type":          "BlogPosting",
		"headline":       doc.Metadata.Title,
		"description":    description,
		"datePublished":  doc.Metadata.PublishedAt,
		"url":            docURL,
		"articleSection": doc.Metadata.Category,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   docURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if doc.Metadata.Image != "" {
		data["image"] = absoluteURL(cfg.URL, doc.Metadata.Image)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// absoluteURL resolves ref against base, leaving absolute URLs untouched.
func absoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
