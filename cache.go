package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/toc"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("folio: not found")

// Rendered is a document body turned into HTML plus its outline.
type Rendered struct {
	HTML    string
	Outline []*toc.MenuItem
}

// ContentCache keeps one collection in memory and reloads it from disk once
// the TTL has passed. A failing reload is returned to the caller; the stale
// collection is never served in its place.
type ContentCache struct {
	dir   string
	ttl   time.Duration
	rng   toc.LevelRange
	opts  []content.LoadOption
	mu    sync.RWMutex
	docs  content.Processor
	pages map[string]Rendered

	loaded  bool
	fetched time.Time
}

// NewContentCache creates a ContentCache over dir. A negative ttl keeps the
// first load forever.
func NewContentCache(dir string, ttl time.Duration, rng toc.LevelRange, opts ...content.LoadOption) *ContentCache {
	return &ContentCache{dir: dir, ttl: ttl, rng: rng, opts: opts}
}

func (c *ContentCache) valid() bool {
	if !c.loaded {
		return false
	}
	return c.ttl < 0 || time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.pages = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	docs, err := c.read()
	if err != nil {
		c.loaded = false
		return err
	}
	c.docs = docs
	c.pages = make(map[string]Rendered)
	c.loaded = true
	c.fetched = time.Now()
	return nil
}

func (c *ContentCache) read() (content.Processor, error) {
	if _, err := os.Stat(c.dir); errors.Is(err, fs.ErrNotExist) {
		return content.New(nil), nil
	}
	return content.FromDirectory(c.dir, c.opts...)
}

// Processor returns the collection after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) Processor() (content.Processor, error) {
	c.mu.RLock()
	if c.valid() {
		docs := c.docs
		c.mu.RUnlock()
		return docs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return content.Processor{}, err
	}
	return c.docs, nil
}

// Document returns one document by slug.
func (c *ContentCache) Document(slug string) (content.Document, error) {
	docs, err := c.Processor()
	if err != nil {
		return content.Document{}, err
	}
	doc, ok := docs.ArticleBySlug(slug)
	if !ok {
		return content.Document{}, ErrNotFound
	}
	return doc, nil
}

// Render returns the document and its rendered body, memoized until the
// next reload.
func (c *ContentCache) Render(slug string) (content.Document, Rendered, error) {
	doc, err := c.Document(slug)
	if err != nil {
		return content.Document{}, Rendered{}, err
	}

	c.mu.RLock()
	r, ok := c.pages[slug]
	c.mu.RUnlock()
	if ok {
		return doc, r, nil
	}

	r, err = renderDocument(doc, c.rng)
	if err != nil {
		return content.Document{}, Rendered{}, err
	}
	c.mu.Lock()
	if c.pages != nil {
		c.pages[slug] = r
	}
	c.mu.Unlock()
	return doc, r, nil
}

func renderDocument(doc content.Document, rng toc.LevelRange) (Rendered, error) {
	body, err := markdown.Render(doc.Content)
	if err != nil {
		return Rendered{}, fmt.Errorf("folio: render %s: %w", doc.Path, err)
	}
	outline, err := Outline(body, rng)
	if err != nil {
		return Rendered{}, fmt.Errorf("folio: outline %s: %w", doc.Path, err)
	}
	return Rendered{HTML: body, Outline: outline}, nil
}

// Outline resolves the table of contents of a rendered body.
func Outline(body string, rng toc.LevelRange) ([]*toc.MenuItem, error) {
	page := `<article id="` + toc.DefaultContainerID + `">` + body + `</article>`
	src, err := toc.NewHTMLSource(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	return toc.Resolver{ContainerID: toc.DefaultContainerID, Range: rng}.Resolve(src)
}
