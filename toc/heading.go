// Package toc builds a table-of-contents outline from rendered headings and
// tracks which heading the reader has scrolled past.
package toc

import (
	"errors"
	"fmt"
)

// Level is a heading level, 1 for h1 through 6 for h6.
type Level int

// Handle identifies a rendered heading inside the registry of the page that
// produced it. The registry, not this package, owns the element.
type Handle int

// Heading is one heading element as reported by a HeadingSource.
type Heading struct {
	Level  Level
	ID     string
	Title  string
	Handle Handle
	// HasContent is false for headings without child nodes.
	HasContent bool
}

// Link is the in-page fragment for the heading.
func (h Heading) Link() string {
	return "#" + h.ID
}

// MenuItem is one node of the outline.
type MenuItem struct {
	Level    Level       `json:"level"`
	Title    string      `json:"title"`
	Link     string      `json:"link"`
	Handle   Handle      `json:"-"`
	Children []*MenuItem `json:"children,omitempty"`
}

// LevelRange bounds the heading levels kept in an outline, inclusive.
type LevelRange struct {
	Min, Max Level
}

// DefaultRange keeps h2 through h6.
var DefaultRange = LevelRange{Min: 2, Max: 6}

// ErrInvalidRange is returned for ranges outside 1..6 or with Min > Max.
var ErrInvalidRange = errors.New("toc: invalid level range")

// Contains reports whether l is within the range.
func (r LevelRange) Contains(l Level) bool {
	return l >= r.Min && l <= r.Max
}

func (r LevelRange) validate() error {
	if r.Min < 1 || r.Max > 6 || r.Min > r.Max {
		return fmt.Errorf("%w: %d..%d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// BuildOutline nests headings given in document order. Each heading becomes
// a child of the nearest earlier heading with a strictly lower level, or a
// root when there is none. Skipped levels nest under the closest ancestor.
func BuildOutline(headings []Heading) []*MenuItem {
	items := make([]*MenuItem, len(headings))
	var roots []*MenuItem
outer:
	for i, h := range headings {
		cur := &MenuItem{Level: h.Level, Title: h.Title, Link: h.Link(), Handle: h.Handle}
		items[i] = cur
		for j := i - 1; j >= 0; j-- {
			if prev := items[j]; prev.Level < cur.Level {
				prev.Children = append(prev.Children, cur)
				continue outer
			}
		}
		roots = append(roots, cur)
	}
	return roots
}

// Flatten walks items depth first.
func Flatten(items []*MenuItem) []*MenuItem {
	var out []*MenuItem
	var walk func([]*MenuItem)
	walk = func(items []*MenuItem) {
		for _, it := range items {
			out = append(out, it)
			walk(it.Children)
		}
	}
	walk(items)
	return out
}
