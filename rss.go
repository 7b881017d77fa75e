package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Self          atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// feedItems maps one collection to feed entries, newest first.
func (a *App) feedItems(kind Kind, docs content.Processor) []rssItem {
	base := a.Config.URL
	return content.Map(docs.SortByDateDesc(), func(d content.Document) rssItem {
		link := BuildURL(base, string(kind), d.Slug)
		return rssItem{
			Title:       d.Metadata.Title,
			Link:        link,
			Description: d.Metadata.Summary,
			PubDate:     d.Published().UTC().Format(http.TimeFormat),
			GUID:        rssGUID{IsPermaLink: "false", Value: link},
		}
	})
}

func (a *App) renderRSS(c echo.Context, articles, crafts content.Processor) error {
	items := append(a.feedItems(KindArticle, articles), a.feedItems(KindCraft, crafts)...)
	feed := rssXML{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         a.Config.Name,
			Link:          BuildURL(a.Config.URL),
			Description:   a.Config.Description,
			Language:      a.Config.Language,
			LastBuildDate: a.now().UTC().Format(http.TimeFormat),
			Self: atomLink{
				Href: BuildURL(a.Config.URL) + "rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
