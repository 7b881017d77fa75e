package toc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultContainerID is the id of the element that wraps rendered content.
const DefaultContainerID = "folio-doc"

// AnchorClass marks the element inside a heading that carries its label.
const AnchorClass = "header-anchor"

// ErrNoHeadings is returned by a Resolver with RequireHeadings set when the
// container holds no usable heading.
var ErrNoHeadings = errors.New("toc: no headings found")

// MissingContainerError reports that the content container is not on the page.
type MissingContainerError struct {
	ID string
}

func (e *MissingContainerError) Error() string {
	return fmt.Sprintf("toc: container #%s not found; the page must wrap its content in an element with this id", e.ID)
}

// HeadingSource exposes the headings of one rendered page.
type HeadingSource interface {
	// Headings returns every h1..h6 inside the element with id containerID
	// in document order. found is false when that element is absent.
	Headings(containerID string) (headings []Heading, found bool, err error)
}

// Resolver turns the headings of a page into an outline and publishes the
// flat anchor list to Store.
type Resolver struct {
	ContainerID     string
	Range           LevelRange
	Store           *AnchorStore
	RequireHeadings bool
}

// Resolve reads src and returns the nested outline.
func (r Resolver) Resolve(src HeadingSource) ([]*MenuItem, error) {
	id := r.ContainerID
	if id == "" {
		id = DefaultContainerID
	}
	rng := r.Range
	if rng == (LevelRange{}) {
		rng = DefaultRange
	}
	if err := rng.validate(); err != nil {
		return nil, err
	}

	all, found, err := src.Headings(id)
	if err != nil {
		return nil, fmt.Errorf("toc: read headings: %w", err)
	}
	if !found {
		return nil, &MissingContainerError{ID: id}
	}

	var kept []Heading
	for _, h := range all {
		if h.ID == "" || !h.HasContent || !rng.Contains(h.Level) {
			continue
		}
		kept = append(kept, h)
	}
	if len(kept) == 0 && r.RequireHeadings {
		return nil, ErrNoHeadings
	}

	if r.Store != nil {
		anchors := make([]Anchor, len(kept))
		for i, h := range kept {
			anchors[i] = Anchor{Handle: h.Handle, Link: h.Link()}
		}
		r.Store.Replace(anchors)
	}
	return BuildOutline(kept), nil
}

// HTMLSource reads headings from a rendered HTML document.
type HTMLSource struct {
	doc   *goquery.Document
	nodes []*goquery.Selection
}

// NewHTMLSource parses an HTML document from r.
func NewHTMLSource(r io.Reader) (*HTMLSource, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("toc: parse html: %w", err)
	}
	return &HTMLSource{doc: doc}, nil
}

// Headings implements HeadingSource.
func (s *HTMLSource) Headings(containerID string) ([]Heading, bool, error) {
	container := s.doc.Find("[id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		v, _ := sel.Attr("id")
		return v == containerID
	}).First()
	if container.Length() == 0 {
		return nil, false, nil
	}

	s.nodes = s.nodes[:0]
	var out []Heading
	container.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(sel), "h"))
		id, _ := sel.Attr("id")
		out = append(out, Heading{
			Level:      Level(level),
			ID:         id,
			Title:      strings.TrimSpace(sel.ChildrenFiltered("." + AnchorClass).Text()),
			Handle:     Handle(len(s.nodes)),
			HasContent: sel.Contents().Length() > 0,
		})
		s.nodes = append(s.nodes, sel)
	})
	return out, true, nil
}

// selection returns the heading element behind h, or an empty selection.
func (s *HTMLSource) selection(h Handle) *goquery.Selection {
	if int(h) < 0 || int(h) >= len(s.nodes) {
		return s.doc.Selection.Slice(0, 0)
	}
	return s.nodes[h]
}
