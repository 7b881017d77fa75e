package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/labstack/gommon/log"
)

// DefaultExtension marks the files that are treated as documents.
const DefaultExtension = ".mdx"

// ErrDuplicateSlug is returned when two files in one content root share a slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Logger is the subset of echo.Logger the loader reports diagnostics through.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type loadConfig struct {
	ext    string
	logger Logger
}

// LoadOption configures Load and FromDirectory.
type LoadOption func(*loadConfig)

// WithExtension overrides the document extension (default ".mdx").
func WithExtension(ext string) LoadOption {
	return func(c *loadConfig) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ext = ext
	}
}

// WithLogger routes validation diagnostics to l.
func WithLogger(l Logger) LoadOption {
	return func(c *loadConfig) {
		c.logger = l
	}
}

// FromDirectory loads every document under dir on the local filesystem.
func FromDirectory(dir string, opts ...LoadOption) (Processor, error) {
	return Load(os.DirFS(dir), ".", opts...)
}

// Load walks root inside fsys and parses every document it finds. Any
// failing file aborts the whole load; the error names the file.
func Load(fsys fs.FS, root string, opts ...LoadOption) (Processor, error) {
	cfg := newLoadConfig(opts)
	paths, err := documentPaths(fsys, root, cfg.ext)
	if err != nil {
		return Processor{}, err
	}

	docs := make([]Document, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		doc, err := readDocument(fsys, p)
		if err != nil {
			report(cfg.logger, err)
			return Processor{}, err
		}
		if prev, dup := seen[doc.Slug]; dup {
			return Processor{}, duplicateError(prev, p, doc.Slug)
		}
		seen[doc.Slug] = p
		docs = append(docs, doc)
	}
	return New(docs), nil
}

// Check parses every document under root like Load but keeps going after a
// failure. It returns one error per broken file, in path order.
func Check(fsys fs.FS, root string, opts ...LoadOption) []error {
	cfg := newLoadConfig(opts)
	paths, err := documentPaths(fsys, root, cfg.ext)
	if err != nil {
		return []error{err}
	}

	var errs []error
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		doc, err := readDocument(fsys, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := seen[doc.Slug]; dup {
			errs = append(errs, duplicateError(prev, p, doc.Slug))
			continue
		}
		seen[doc.Slug] = p
	}
	return errs
}

func newLoadConfig(opts []LoadOption) loadConfig {
	cfg := loadConfig{ext: DefaultExtension}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New("content")
	}
	return cfg
}

func documentPaths(fsys fs.FS, root, ext string) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ext {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func readDocument(fsys fs.FS, p string) (Document, error) {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Document{}, fmt.Errorf("content: read %s: %w", p, err)
	}
	return ParseDocument(p, raw)
}

func duplicateError(prev, p, slug string) error {
	return fmt.Errorf("content: %s and %s: %w %q", prev, p, ErrDuplicateSlug, slug)
}

func report(l Logger, err error) {
	var mv *MetadataValidationError
	if !errors.As(err, &mv) {
		return
	}
	l.Errorf("front matter validation failed for %s:", mv.Path)
	for _, v := range mv.Violations {
		l.Errorf("- %s", v)
	}
}
