package content

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"", 1},
		{"短い", 1},
		{strings.Repeat("あ", 400), 1},
		{strings.Repeat("あ", 401), 2},
		{strings.Repeat("x", 1200), 3},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.body); got != tt.want {
			t.Errorf("ReadingTime(%d runes) = %d, want %d", utf8.RuneCountInString(tt.body), got, tt.want)
		}
	}
}

func TestGenerateExcerptStripsMarkup(t *testing.T) {
	body := "# 見出し\n\nSome **bold** and *italic* with [a link](https://example.com) and <span class=\"x\">html</span>.\n\n![図](/img/a.png)"
	got := GenerateExcerpt(body, 0)
	want := "見出し Some bold and italic with a link and html. 図"
	if got != want {
		t.Errorf("GenerateExcerpt = %q, want %q", got, want)
	}
}

func TestGenerateExcerptTruncates(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		maxLen int
	}{
		{"japanese", strings.Repeat("あ", 300), 160},
		{"markup around cut", "**" + strings.Repeat("x", 200) + "**", 50},
		{"link at cut", strings.Repeat("y", 8) + "[リンクテキスト](https://example.com/very/long)", 10},
	}
	for _, tt := range tests {
		got := GenerateExcerpt(tt.body, tt.maxLen)
		if n := utf8.RuneCountInString(got); n > tt.maxLen+1 {
			t.Errorf("%s: excerpt has %d runes, want <= %d", tt.name, n, tt.maxLen+1)
		}
		if !strings.HasSuffix(got, "…") {
			t.Errorf("%s: excerpt %q should end with an ellipsis", tt.name, got)
		}
		if strings.ContainsAny(got, "*[]()") {
			t.Errorf("%s: excerpt %q contains markup", tt.name, got)
		}
	}
}

func TestGenerateExcerptShortBody(t *testing.T) {
	got := GenerateExcerpt("短い本文\n\n二行目", 160)
	if got != "短い本文 二行目" {
		t.Errorf("GenerateExcerpt = %q, want %q", got, "短い本文 二行目")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World!", "hello-world"},
		{"  Precision   Turning 101 ", "precision-turning-101"},
		{"CNC 旋盤 Guide", "cnc-guide"},
		{"ＣＮＣ加工", "cnc"},
		{"a -- b", "a-b"},
		{"-edge-", "edge"},
		{"snake_case_title", "snake_case_title"},
		{"精密加工", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
