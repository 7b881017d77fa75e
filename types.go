package folio

import "github.com/eringen/folio/content"

// Kind names a content collection.
type Kind string

// The two collections a site publishes.
const (
	KindArticle Kind = "article"
	KindCraft   Kind = "craft"
)

// Kinds lists the collections in feed order.
var Kinds = []Kind{KindArticle, KindCraft}

// ParseKind validates a collection name from a URL.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindArticle, KindCraft:
		return Kind(s), true
	}
	return "", false
}

// Title is the heading of the collection index.
func (k Kind) Title() string {
	if k == KindCraft {
		return "Craft"
	}
	return "Article"
}

// display projects p to list rows linking into this collection.
func (k Kind) display(p content.Processor, opts content.DisplayOptions) []content.DisplayItem {
	if k == KindCraft {
		return p.FormatForCraftDisplay(opts)
	}
	return p.FormatForDisplay(opts)
}
