// Package markdown renders document bodies to HTML as templ components.
// Headings carry an id and wrap their text in an ".header-anchor" link so the
// table of contents can read titles without inline decoration.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// LinkClass is applied to every rendered link.
const LinkClass = "underline decoration-2 underline-offset-4"

var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(&nodeRenderer{}, 100)),
	),
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) error {
	ctx := parser.NewContext(parser.WithIDs(newSlugger()))
	if err := engine.Convert([]byte(md), buf, parser.WithContext(ctx)); err != nil {
		return fmt.Errorf("markdown: render: %w", err)
	}
	return nil
}

// Render returns md as an HTML string.
func Render(md string) (string, error) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, md); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type nodeRenderer struct{}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindLink, r.renderLink)
}

func (r *nodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tag := "h" + strconv.Itoa(n.Level)
	id, hasID := n.AttributeString("id")
	idBytes, _ := id.([]byte)
	hasID = hasID && len(idBytes) > 0

	if !entering {
		if hasID {
			_, _ = w.WriteString("</a>")
		}
		_, _ = w.WriteString("</" + tag + ">\n")
		return ast.WalkContinue, nil
	}
	if !hasID {
		_, _ = w.WriteString("<" + tag + ">")
		return ast.WalkContinue, nil
	}
	escaped := util.EscapeHTML(idBytes)
	_, _ = w.WriteString("<" + tag + ` id="`)
	_, _ = w.Write(escaped)
	_, _ = w.WriteString(`" tabindex="-1"><a class="header-anchor" href="#`)
	_, _ = w.Write(escaped)
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := util.EscapeHTML(n.Language(source))
	if len(lang) > 0 {
		_, _ = fmt.Fprintf(w, `<div class="code-block-wrapper"><span class="code-lang code-lang-%[1]s">%[1]s</span>`, lang)
		_, _ = fmt.Fprintf(w, `<pre class="code-block"><code class="language-%s">`, lang)
	} else {
		_, _ = w.WriteString(`<pre class="code-block"><code>`)
	}
	writeLines(w, source, n)
	_, _ = w.WriteString("</code></pre>")
	if len(lang) > 0 {
		_, _ = w.WriteString("</div>")
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<pre class="code-block"><code>`)
	writeLines(w, source, node)
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func writeLines(w util.BufWriter, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
}

func (r *nodeRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" class="` + LinkClass + `"`)
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	if isExternal(n.Destination) {
		_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func isExternal(dest []byte) bool {
	d := strings.ToLower(string(dest))
	return strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://")
}

// slugger generates heading ids that keep non-ASCII letters, so Korean
// headings get readable fragments. Repeated titles get -1, -2 suffixes.
type slugger struct {
	used map[string]bool
}

func newSlugger() *slugger {
	return &slugger{used: make(map[string]bool)}
}

func (s *slugger) Generate(value []byte, kind ast.NodeKind) []byte {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(string(value))) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	base := b.String()
	if base == "" {
		base = "heading"
	}
	id := base
	for n := 1; s.used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	s.used[id] = true
	return []byte(id)
}

func (s *slugger) Put(value []byte) {
	s.used[string(value)] = true
}
