package folio

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/shuffle"
	"github.com/eringen/folio/toc"
	"github.com/eringen/folio/views"
)

// Limits for the home page and the related list under a document.
const (
	homeLimit    = 5
	relatedLimit = 3
)

func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Language:    a.Config.Language,
	}
}

func (a *App) page(c echo.Context, meta views.PageMeta) views.Page {
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	return views.Page{
		Site:      a.siteView(),
		Meta:      meta,
		Prefs:     Preferences(c),
		CSRFToken: CsrfToken(c),
		Path:      c.Request().URL.Path,
	}
}

func (a *App) listOptions() content.DisplayOptions {
	return content.DisplayOptions{Dates: a.Dates}
}

func (a *App) handleHome(c echo.Context) error {
	sections := make([]views.Section, 0, len(Kinds))
	for _, k := range Kinds {
		docs, err := a.collection(k).Processor()
		if err != nil {
			return err
		}
		sections = append(sections, views.Section{
			Kind:  string(k),
			Title: k.Title(),
			Href:  "/" + string(k) + "/",
			Items: k.display(docs.SortByDateDesc().Limit(homeLimit), a.listOptions()),
		})
	}
	p := a.page(c, views.PageMeta{URL: BuildURL(a.Config.URL)})
	p.JSONLD = WebsiteJsonLD(a.Config)
	return Render(c, a.Views.Home(p, sections))
}

func (a *App) handleIndex(k Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		docs, err := a.collection(k).Processor()
		if err != nil {
			return err
		}
		category := c.QueryParam("category")
		list := docs.SortByDateDesc()
		if category != "" {
			list = list.FilterByCategory(category)
		}
		p := a.page(c, views.PageMeta{
			Title: k.Title(),
			URL:   BuildURL(a.Config.URL, string(k)),
		})
		return Render(c, a.Views.Index(p, views.ListPage{
			Kind:       string(k),
			Title:      k.Title(),
			Items:      k.display(list, a.listOptions()),
			Categories: docs.Categories(),
			Active:     category,
		}))
	}
}

func (a *App) handleDocument(k Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		coll := a.collection(k)
		doc, rendered, err := coll.Render(c.Param("slug"))
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		if err != nil {
			return err
		}
		docs, err := coll.Processor()
		if err != nil {
			return err
		}

		published, err := a.Dates.FormatDate(doc.Metadata.PublishedAt, true)
		if err != nil {
			published = doc.Metadata.PublishedAt
		}
		cover, ogImage := "", ""
		if doc.Metadata.Image != "" {
			cover = views.CoverURL("/"+string(k)+"/"+doc.Slug, doc.Metadata.Image)
			ogImage = absoluteURL(a.Config.URL, cover)
		}
		description := doc.Metadata.Description
		if description == "" {
			description = doc.Metadata.Summary
		}

		p := a.page(c, views.PageMeta{
			Title:       doc.Metadata.Title,
			Description: description,
			URL:         BuildURL(a.Config.URL, string(k), doc.Slug),
			OGType:      "article",
			Image:       ogImage,
		})
		return Render(c, a.Views.Document(p, views.DocumentPage{
			Kind:        string(k),
			Document:    doc,
			PublishedAt: published,
			Body:        rendered.HTML,
			Outline:     rendered.Outline,
			Related:     k.display(Related(doc, docs, relatedLimit), a.listOptions()),
			JSONLD:      DocumentJsonLD(doc, k, a.Config),
			CoverURL:    cover,
		}))
	}
}

func (a *App) collections() (articles, crafts content.Processor, err error) {
	if articles, err = a.Articles.Processor(); err != nil {
		return
	}
	crafts, err = a.Crafts.Processor()
	return
}

func (a *App) handleSitemap(c echo.Context) error {
	articles, crafts, err := a.collections()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, articles, crafts)
}

func (a *App) handleFeed(c echo.Context) error {
	articles, crafts, err := a.collections()
	if err != nil {
		return err
	}
	return a.renderRSS(c, articles, crafts)
}

func (a *App) handleFavicon(c echo.Context) error {
	if path, ok := a.staticFile("favicon.svg"); ok {
		return c.File(path)
	}
	data, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}

// handleRobots serves robots.txt from the static dir when the site ships one.
func (a *App) handleRobots(c echo.Context) error {
	if path, ok := a.staticFile("robots.txt"); ok {
		return c.File(path)
	}
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /playground/\n\n")
	b.WriteString("Host: " + BuildURL(a.Config.URL) + "\n")
	b.WriteString("Sitemap: " + BuildURL(a.Config.URL) + "sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) staticFile(name string) (string, bool) {
	path := filepath.Join(a.Config.StaticDir, name)
	return path, fileExists(path)
}

// tocResponse is the body of /api/toc/:kind/:slug/.
type tocResponse struct {
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	Outline []*toc.MenuItem `json:"outline"`
}

// handleTOC returns a document's outline. ?min and ?max narrow the levels.
func (a *App) handleTOC(c echo.Context) error {
	kind, ok := ParseKind(c.Param("kind"))
	if !ok {
		return echo.ErrNotFound
	}
	doc, rendered, err := a.collection(kind).Render(c.Param("slug"))
	if err != nil {
		return err
	}

	outline := rendered.Outline
	if c.QueryParam("min") != "" || c.QueryParam("max") != "" {
		minLevel, err := intParam(c, "min", int(a.Config.TOCRange.Min))
		if err != nil {
			return err
		}
		maxLevel, err := intParam(c, "max", int(a.Config.TOCRange.Max))
		if err != nil {
			return err
		}
		outline, err = Outline(rendered.HTML, toc.LevelRange{Min: toc.Level(minLevel), Max: toc.Level(maxLevel)})
		if errors.Is(err, toc.ErrInvalidRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err != nil {
			return err
		}
	}
	if outline == nil {
		outline = []*toc.MenuItem{}
	}
	return c.JSON(http.StatusOK, tocResponse{
		Slug:    doc.Slug,
		Title:   doc.Metadata.Title,
		Outline: outline,
	})
}

// shuffleResponse is the body of /playground/shuffle-letters/.
type shuffleResponse struct {
	Text       string   `json:"text"`
	Iterations int      `json:"iterations"`
	FPS        int      `json:"fps"`
	IntervalMs int64    `json:"intervalMs"`
	Frames     []string `json:"frames"`
}

func (a *App) handleShuffle(c echo.Context) error {
	text := c.QueryParam("text")
	if text == "" {
		text = a.Config.Name
	}
	cfg := shuffle.DefaultConfig
	var err error
	if cfg.Iterations, err = intParam(c, "iterations", cfg.Iterations); err != nil {
		return err
	}
	if cfg.FPS, err = intParam(c, "fps", cfg.FPS); err != nil {
		return err
	}

	frames, err := shuffle.Frames(text, cfg, nil)
	var rangeErr *shuffle.RangeError
	if errors.As(err, &rangeErr) {
		return echo.NewHTTPError(http.StatusBadRequest, rangeErr.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shuffleResponse{
		Text:       text,
		Iterations: cfg.Iterations,
		FPS:        cfg.FPS,
		IntervalMs: cfg.Interval().Milliseconds(),
		Frames:     frames,
	})
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}

func isJSONPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/playground/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		err = echo.ErrNotFound
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}

	if isJSONPath(c.Request().URL.Path) {
		msg := http.StatusText(code)
		if ok && code < 500 {
			if s, isStr := he.Message.(string); isStr {
				msg = s
			}
		}
		_ = c.JSON(code, map[string]string{"error": msg})
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound())
	case code >= 500:
		_ = RenderStatus(c, code, a.Views.ServerError())
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
