package content

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// CharactersPerMinute is the reading speed used for Japanese text.
	CharactersPerMinute = 400
	// DefaultExcerptLength is the excerpt length in runes before the ellipsis.
	DefaultExcerptLength = 160
	ellipsis             = "…"
)

var (
	reHeading     = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	reImage       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	reLink        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	reBold        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reBoldUnder   = regexp.MustCompile(`__([^_]+)__`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnder = regexp.MustCompile(`\b_([^_]+)_\b`)
	reHTMLTag     = regexp.MustCompile(`<[^>]*>`)
	reWhitespace  = regexp.MustCompile(`\s+`)
	reNonWord     = regexp.MustCompile(`[^\w\s-]`)
	reHyphens     = regexp.MustCompile(`-+`)
)

// ReadingTime estimates minutes to read body at CharactersPerMinute.
// The result is never below 1.
func ReadingTime(body string) int {
	n := utf8.RuneCountInString(body)
	minutes := int(math.Ceil(float64(n) / CharactersPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// PlainText strips Markdown emphasis, headings, links, images and HTML tags
// from body and collapses whitespace.
func PlainText(body string) string {
	s := reHeading.ReplaceAllString(body, "")
	s = reImage.ReplaceAllString(s, "$1")
	s = reLink.ReplaceAllString(s, "$1")
	s = reBold.ReplaceAllString(s, "$1")
	s = reBoldUnder.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reItalicUnder.ReplaceAllString(s, "$1")
	s = reHTMLTag.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// GenerateExcerpt returns the first maxLen runes of body's plain text,
// followed by an ellipsis when truncated. maxLen <= 0 uses
// DefaultExcerptLength.
func GenerateExcerpt(body string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}
	text := PlainText(body)
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimRightFunc(string(runes[:maxLen]), unicode.IsSpace)
	return cut + ellipsis
}

// Slugify lower-cases title, drops characters that are not ASCII word
// characters, whitespace or hyphens, and joins words with single hyphens.
// Full-width Latin letters and digits are folded to ASCII first.
func Slugify(title string) string {
	s := norm.NFKC.String(title)
	s = strings.ToLower(strings.TrimSpace(s))
	s = reNonWord.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
