package folio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	jpegQuality  = 80
	maxCoverSize = 20 << 20 // 20MB source images
)

// processCover decodes an image from src, shrinks it to maxWidth when wider,
// and encodes it as JPEG.
func processCover(src io.Reader, maxWidth int) ([]byte, image.Point, error) {
	img, _, err := image.Decode(io.LimitReader(src, maxCoverSize))
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// coverCache memoizes thumbnails by source path.
type coverCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func (c *coverCache) get(key string, build func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.items[key]; ok {
		return data, nil
	}
	data, err := build()
	if err != nil {
		return nil, err
	}
	if c.items == nil {
		c.items = make(map[string][]byte)
	}
	c.items[key] = data
	return data, nil
}

// staticPath maps a /public/ URL from front matter onto the static dir.
// It rejects anything that would leave that directory.
func (a *App) staticPath(image string) (string, bool) {
	rel, ok := strings.CutPrefix(image, "/public/")
	if !ok {
		return "", false
	}
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(a.Config.StaticDir, rel), true
}

// handleCover serves /covers/:kind/:file, a thumbnail of the document's
// front matter image.
func (a *App) handleCover(c echo.Context) error {
	kind, ok := ParseKind(c.Param("kind"))
	if !ok {
		return echo.ErrNotFound
	}
	slug, ok := strings.CutSuffix(c.Param("file"), ".jpg")
	if !ok {
		return echo.ErrNotFound
	}
	doc, err := a.collection(kind).Document(slug)
	if err != nil {
		return err
	}
	src, ok := a.staticPath(doc.Metadata.Image)
	if !ok {
		return echo.ErrNotFound
	}

	data, err := a.covers.get(src, func() ([]byte, error) {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, _, err := processCover(f, a.Config.CoverWidth)
		return data, err
	})
	if err != nil {
		if os.IsNotExist(err) {
			return echo.ErrNotFound
		}
		c.Logger().Warnf("cover %s/%s: %v", kind, slug, err)
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
