package content

// Route prefixes for the two content collections.
const (
	ArticleRoute = "/article/"
	CraftRoute   = "/craft/"
)

// DateFormatter renders a publishedAt value for display.
type DateFormatter interface {
	FormatDate(date string, includeRelative bool) (string, error)
}

// DisplayOptions controls FormatForDisplay and FormatForCraftDisplay.
type DisplayOptions struct {
	// Dates renders PublishedAt. When nil the raw header value is used.
	Dates               DateFormatter
	IncludeRelativeDate bool
}

// DisplayItem is the list-row projection of a document.
type DisplayItem struct {
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Href        string `json:"href"`
	PublishedAt string `json:"publishedAt"`
	Image       string `json:"image,omitempty"`
}

// FormatForDisplay projects the chain to article list rows.
func (p Processor) FormatForDisplay(opts DisplayOptions) []DisplayItem {
	return p.display(ArticleRoute, opts)
}

// FormatForCraftDisplay projects the chain to craft list rows.
func (p Processor) FormatForCraftDisplay(opts DisplayOptions) []DisplayItem {
	return p.display(CraftRoute, opts)
}

func (p Processor) display(prefix string, opts DisplayOptions) []DisplayItem {
	return Map(p, func(d Document) DisplayItem {
		return DisplayItem{
			Name:        d.Metadata.Title,
			Summary:     d.Metadata.Summary,
			Href:        prefix + d.Slug,
			PublishedAt: formatDate(opts, d.Metadata.PublishedAt),
			Image:       d.Metadata.Image,
		}
	})
}

func formatDate(opts DisplayOptions, date string) string {
	if opts.Dates == nil {
		return date
	}
	s, err := opts.Dates.FormatDate(date, opts.IncludeRelativeDate)
	if err != nil {
		return date
	}
	return s
}
