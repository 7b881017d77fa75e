// Package content discovers front-matter documents on disk and exposes an
// immutable, chainable query over them.
package content

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Document is one validated content file.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Slug     string   `json:"slug"`
	Content  string   `json:"content"`
	// Path is the slash-separated location of the source file within the content root.
	Path string `json:"-"`

	published time.Time
}

// Published returns publishedAt as a time. Calendar dates are midnight UTC.
func (d Document) Published() time.Time {
	return d.published
}

// ParseDocument parses and validates one content file. The slug is the
// file name without its extension.
func ParseDocument(name string, raw []byte) (Document, error) {
	fields, body, err := Parse(raw)
	if err != nil {
		if mf, ok := err.(*MissingFrontmatterError); ok {
			mf.Path = name
			return Document{}, mf
		}
		return Document{}, fmt.Errorf("content: %s: %w", name, err)
	}
	meta, err := ValidateFields(fields)
	if err != nil {
		if mv, ok := err.(*MetadataValidationError); ok {
			mv.Path = name
			return Document{}, mv
		}
		return Document{}, fmt.Errorf("content: %s: %w", name, err)
	}
	published, _ := parseDate(meta.PublishedAt)
	return Document{
		Metadata:  meta,
		Slug:      SlugFromPath(name),
		Content:   body,
		Path:      name,
		published: published,
	}, nil
}

// SlugFromPath derives a slug from a file path: the base name minus its extension.
func SlugFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
