package content

import (
	"fmt"
	"slices"
	"sort"
)

// Transform is one deferred step of a Processor chain. It must not modify
// its input.
type Transform func([]Document) []Document

// Processor is an immutable query over a document collection. Every chain
// method returns a new Processor sharing the same base; steps run only when
// a terminal method is called.
type Processor struct {
	base []Document
	ops  []Transform
}

// New wraps docs as a Processor. docs is copied.
func New(docs []Document) Processor {
	return Processor{base: slices.Clone(docs)}
}

func (p Processor) with(op Transform) Processor {
	ops := make([]Transform, len(p.ops), len(p.ops)+1)
	copy(ops, p.ops)
	return Processor{base: p.base, ops: append(ops, op)}
}

func (p Processor) apply() []Document {
	docs := p.base
	for _, op := range p.ops {
		docs = op(docs)
	}
	return docs
}

// SortByDateDesc orders newest first. Equal dates fall back to slug order.
func (p Processor) SortByDateDesc() Processor {
	return p.with(func(docs []Document) []Document {
		return sortByDate(docs, true)
	})
}

// SortByDateAsc orders oldest first. Equal dates fall back to slug order.
func (p Processor) SortByDateAsc() Processor {
	return p.with(func(docs []Document) []Document {
		return sortByDate(docs, false)
	})
}

func sortByDate(docs []Document, desc bool) []Document {
	out := slices.Clone(docs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].published, out[j].published
		if !a.Equal(b) {
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// FilterByCategory keeps documents whose category equals category exactly.
func (p Processor) FilterByCategory(category string) Processor {
	return p.Filter(func(d Document) bool {
		return d.Metadata.Category == category
	})
}

// Filter keeps documents for which keep returns true.
func (p Processor) Filter(keep func(Document) bool) Processor {
	return p.with(func(docs []Document) []Document {
		out := make([]Document, 0, len(docs))
		for _, d := range docs {
			if keep(d) {
				out = append(out, d)
			}
		}
		return out
	})
}

// Limit keeps the first n documents of the current order. Call it after a
// sort; it does not impose one. A negative n panics.
func (p Processor) Limit(n int) Processor {
	if n < 0 {
		panic(fmt.Sprintf("content: negative limit %d", n))
	}
	return p.with(func(docs []Document) []Document {
		if n >= len(docs) {
			return docs
		}
		return docs[:n:n]
	})
}

// Articles materializes the chain. The returned slice is owned by the caller.
func (p Processor) Articles() []Document {
	return slices.Clone(p.apply())
}

// ArticleBySlug returns the first document in the chain with the given slug.
func (p Processor) ArticleBySlug(slug string) (Document, bool) {
	for _, d := range p.apply() {
		if d.Slug == slug {
			return d, true
		}
	}
	return Document{}, false
}

// Len reports how many documents the chain yields.
func (p Processor) Len() int {
	return len(p.apply())
}

// Categories returns the distinct categories of the chain, sorted.
func (p Processor) Categories() []string {
	set := make(map[string]struct{})
	for _, d := range p.apply() {
		set[d.Metadata.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Map projects every document of p through fn, preserving order.
func Map[T any](p Processor, fn func(Document) T) []T {
	docs := p.apply()
	out := make([]T, len(docs))
	for i, d := range docs {
		out[i] = fn(d)
	}
	return out
}
