package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) sitemapURLs(kind Kind, docs content.Processor) []sitemapURL {
	return content.Map(docs.SortByDateDesc(), func(d content.Document) sitemapURL {
		return sitemapURL{
			Loc:     BuildURL(a.Config.URL, string(kind), d.Slug),
			LastMod: d.Published().Format(content.DateLayout),
		}
	})
}

func (a *App) renderSitemap(c echo.Context, articles, crafts content.Processor) error {
	base := a.Config.URL
	today := a.now().Format(content.DateLayout)
	urls := []sitemapURL{
		{Loc: BuildURL(base), LastMod: today},
		{Loc: BuildURL(base, string(KindCraft)), LastMod: today},
		{Loc: BuildURL(base, string(KindArticle)), LastMod: today},
	}
	urls = append(urls, a.sitemapURLs(KindCraft, crafts)...)
	urls = append(urls, a.sitemapURLs(KindArticle, articles)...)
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
