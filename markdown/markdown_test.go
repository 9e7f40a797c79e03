package markdown

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
)

func render(t *testing.T, src string) string {
	t.Helper()
	out, err := Render(src)
	if err != nil {
		t.Fatalf("Render(%q) failed: %v", src, err)
	}
	return string(out)
}

func TestRenderBasics(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"# Title", `<h1 id="title">Title</h1>`},
		{"Hello **world**", "<strong>world</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"- one\n- two", "<li>one</li>"},
		{"| a | b |\n|---|---|\n| 1 | 2 |", "<td>1</td>"},
		{"~~gone~~", "<del>gone</del>"},
		{"```go\nfmt.Println()\n```", `<code class="language-go">`},
		{"[link](https://example.com)", `href="https://example.com"`},
	}
	for _, tt := range tests {
		if got := render(t, tt.input); !strings.Contains(got, tt.contains) {
			t.Errorf("Render(%q) = %q, want to contain %q", tt.input, got, tt.contains)
		}
	}
}

func TestRenderSanitizes(t *testing.T) {
	tests := []struct {
		input     string
		forbidden string
	}{
		{"<script>alert(1)</script>\n\ntext", "<script"},
		{`<img src="x" onerror="alert(1)">`, "onerror"},
		{"[x](javascript:alert(1))", "javascript:"},
		{`<div style="color:red">styled</div>`, "style="},
	}
	for _, tt := range tests {
		if got := render(t, tt.input); strings.Contains(got, tt.forbidden) {
			t.Errorf("Render(%q) = %q, must not contain %q", tt.input, got, tt.forbidden)
		}
	}
}

func TestRenderStripsMDXModuleLines(t *testing.T) {
	src := "import Chart from '../components/Chart'\nexport const meta = {}\n\n本文\n\n```js\nimport x from 'y'\n```\n"
	got := render(t, src)
	if strings.Contains(got, "Chart") || strings.Contains(got, "meta") {
		t.Errorf("module lines leaked into output: %q", got)
	}
	if !strings.Contains(got, "import x from") {
		t.Errorf("import inside a code fence was dropped: %q", got)
	}
	if !strings.Contains(got, "本文") {
		t.Errorf("body missing: %q", got)
	}
}

func TestHeadings(t *testing.T) {
	src := "# 概要\n\n## Setup Guide\n\ntext\n\n### Setup Guide\n\n#### Level *four*\n\n##### too deep\n\n## 仕様\n"
	got := Headings(src)
	want := []Heading{
		{Level: 1, Text: "概要", ID: "heading"},
		{Level: 2, Text: "Setup Guide", ID: "setup-guide"},
		{Level: 3, Text: "Setup Guide", ID: "setup-guide-1"},
		{Level: 4, Text: "Level four", ID: "level-four"},
		{Level: 2, Text: "仕様", ID: "heading-1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Headings =\n%+v\nwant\n%+v", got, want)
	}
}

func TestHeadingIDsMatchRender(t *testing.T) {
	src := "## Tolerances\n\n## Tolerances\n"
	html := render(t, src)
	for _, h := range Headings(src) {
		if !strings.Contains(html, `id="`+h.ID+`"`) {
			t.Errorf("rendered HTML %q lacks id %q", html, h.ID)
		}
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Component("## Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), `<h2 id="hi">Hi</h2>`) {
		t.Errorf("Component output = %q", buf.String())
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/a.png", "https://example.com/a.png"},
		{"http://example.com", "http://example.com"},
		{"/images/part.webp", "/images/part.webp"},
		{"#section", "#section"},
		{"mailto:info@example.com", "mailto:info@example.com"},
		{"tel:+81-3-0000-0000", "tel:+81-3-0000-0000"},
		{"javascript:alert(1)", ""},
		{"//evil.example.com/x", ""},
		{"relative/path", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
