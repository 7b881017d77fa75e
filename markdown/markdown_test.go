package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	got, err := Render(md)
	if err != nil {
		t.Fatalf("Render(%q): %v", md, err)
	}
	return got
}

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1" tabindex="-1"><a class="header-anchor" href="#heading-1">Heading 1</a></h1>`},
		{"## Heading 2", `<h2 id="heading-2" tabindex="-1"><a class="header-anchor" href="#heading-2">Heading 2</a></h2>`},
		{"### Heading 3", `<h3 id="heading-3" tabindex="-1"><a class="header-anchor" href="#heading-3">Heading 3</a></h3>`},
	}
	for _, tt := range tests {
		got := strings.TrimSpace(render(t, tt.input))
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestHeadingIDsKeepHangul(t *testing.T) {
	got := render(t, "## 시작하기")
	if !strings.Contains(got, `id="시작하기"`) {
		t.Errorf("Render = %q, want a Hangul id", got)
	}
}

func TestHeadingIDsAreUnique(t *testing.T) {
	got := render(t, "## Intro\n\ntext\n\n## Intro\n\n## Intro")
	for _, id := range []string{`id="intro"`, `id="intro-1"`, `id="intro-2"`} {
		if !strings.Contains(got, id) {
			t.Errorf("Render = %q, missing %s", got, id)
		}
	}
}

func TestHeadingIDsResetPerRender(t *testing.T) {
	first := render(t, "## Intro")
	second := render(t, "## Intro")
	if first != second {
		t.Errorf("ids leaked between renders: %q vs %q", first, second)
	}
}

func TestHeadingInlineMarkupStaysInsideAnchor(t *testing.T) {
	got := render(t, "## Use `go test`")
	want := `<a class="header-anchor" href="#use-go-test">Use <code>go test</code></a>`
	if !strings.Contains(got, want) {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	got := render(t, "```\ncode here\n```")
	if !strings.Contains(got, `<pre class="code-block"><code>`) {
		t.Errorf("code block failed: %q", got)
	}
	if !strings.Contains(got, "code here") {
		t.Errorf("code block missing content: %q", got)
	}
	if strings.Contains(got, "code-lang") || strings.Contains(got, "code-block-wrapper") {
		t.Errorf("code block without language should not have badge: %q", got)
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"<hello>\")\n```")
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, `<span class="code-lang code-lang-go">go</span>`) {
		t.Errorf("code block should have language badge: %q", got)
	}
	if !strings.Contains(got, `<div class="code-block-wrapper">`) || !strings.Contains(got, "</div>") {
		t.Errorf("code block should be wrapped in div: %q", got)
	}
	if !strings.Contains(got, "&lt;hello&gt;") {
		t.Errorf("code should be escaped: %q", got)
	}
}

func TestRenderMarkdownIndentedCodeBlock(t *testing.T) {
	got := render(t, "para\n\n    indented\n")
	if !strings.Contains(got, `<pre class="code-block"><code>indented`) {
		t.Errorf("indented code block failed: %q", got)
	}
}

func TestRenderMarkdownLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<a href="https://en.wikipedia.org/wiki/Some_Article_Title" class="underline decoration-2 underline-offset-4" target="_blank" rel="noopener noreferrer">Wikipedia</a>`,
		},
		{
			"[About](/about)",
			`<a href="/about" class="underline decoration-2 underline-offset-4">About</a>`,
		},
		{
			`[Docs](/docs "Read me")`,
			`<a href="/docs" class="underline decoration-2 underline-offset-4" title="Read me">Docs</a>`,
		},
		{
			"[bad](javascript:alert)",
			`<a href="" class="underline decoration-2 underline-offset-4">bad</a>`,
		},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"Run `go test` to verify.", "<code>go test</code>"},
		{"`**not bold**`", "<code>**not bold**</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	got := render(t, "- item 1\n- item 2\n\n1. first\n2. second\n\nsome text")
	for _, want := range []string{"<ul>", "<li>item 1</li>", "<ol>", "<li>second</li>", "<p>some text</p>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render = %q, missing %q", got, want)
		}
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render = %q, missing %q", got, want)
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("## Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), `href="#hi"`) {
		t.Errorf("component output = %q", buf.String())
	}
}
