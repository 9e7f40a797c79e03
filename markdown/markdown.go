// Package markdown renders post and page bodies to sanitised HTML and exposes
// them as templ components.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/takeparts/partsite/content"
)

// MaxTOCLevel is the deepest heading level listed by Headings.
const MaxTOCLevel = 4

var (
	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	policy = newPolicy()

	// MDX module lines have no meaning outside a JS toolchain.
	reMDXModule = regexp.MustCompile(`^(import|export)\s`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#-]+$`)).OnElements("code")
	p.AllowAttrs("loading", "decoding").OnElements("img")
	return p
}

// Heading is one entry of a table of contents.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Render converts an MDX or Markdown body to sanitised HTML. Headings carry
// the same ids Headings reports.
func Render(src string) ([]byte, error) {
	var buf bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := engine.Convert([]byte(stripMDX(src)), &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}
	return policy.SanitizeBytes(buf.Bytes()), nil
}

// Component returns a templ.Component that renders src as HTML.
func Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render(src)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}

// Headings lists the headings of src down to MaxTOCLevel in document order.
func Headings(src string) []Heading {
	source := []byte(stripMDX(src))
	pctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	doc := engine.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level <= MaxTOCLevel {
			var id string
			if v, ok := h.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			out = append(out, Heading{
				Level: h.Level,
				Text:  strings.TrimSpace(string(h.Text(source))),
				ID:    id,
			})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

// stripMDX drops import/export lines outside fenced code blocks.
func stripMDX(src string) string {
	lines := strings.Split(src, "\n")
	out := lines[:0]
	fenced := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
		}
		if !fenced && reMDXModule.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// headingIDs generates slug ids and disambiguates repeats with a counter.
// Headings without Latin characters fall back to "heading".
type headingIDs struct {
	used map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: make(map[string]int)}
}

func (s *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := content.Slugify(string(value))
	if base == "" {
		base = "heading"
	}
	id := base
	if n, ok := s.used[base]; ok {
		id = base + "-" + strconv.Itoa(n)
		s.used[base] = n + 1
	} else {
		s.used[base] = 1
	}
	s.used[id] = max(s.used[id], 1)
	return []byte(id)
}

func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = max(s.used[string(value)], 1)
}

// SafeURL validates a link or image target for use in an HTML attribute.
// Site-relative paths and http(s), mailto and tel URLs pass; anything else
// yields "".
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if (strings.HasPrefix(val, "/") && !strings.HasPrefix(val, "//")) || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}
