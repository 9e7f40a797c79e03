package partsite

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"
)

type parsedRSS struct {
	Channel struct {
		Title         string `xml:"title"`
		LastBuildDate string `xml:"lastBuildDate"`
		Copyright     string `xml:"copyright"`
		TTL           int    `xml:"ttl"`
		Image         struct {
			URL string `xml:"url"`
		} `xml:"image"`
		Items []struct {
			Title     string `xml:"title"`
			Link      string `xml:"link"`
			GUID      string `xml:"guid"`
			PubDate   string `xml:"pubDate"`
			Creator   string `xml:"http://purl.org/dc/elements/1.1/ creator"`
			Encoded   string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
			Enclosure struct {
				URL    string `xml:"url,attr"`
				Length int64  `xml:"length,attr"`
				Type   string `xml:"type,attr"`
			} `xml:"enclosure"`
			Categories []string `xml:"category"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestFeed(t *testing.T) {
	a := newTestApp(t, Config{})

	for _, path := range []string{"/rss.xml", "/feed.xml"} {
		rec := do(t, a, http.MethodGet, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", path, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/rss+xml") {
			t.Errorf("GET %s Content-Type = %q", path, got)
		}
		if got, want := rec.Header().Get("Cache-Control"), "public, max-age=3600"; got != want {
			t.Errorf("GET %s Cache-Control = %q, want %q", path, got, want)
		}
	}

	rec := do(t, a, http.MethodGet, "/rss.xml")
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<?xml") {
		t.Errorf("feed does not start with an XML declaration")
	}
	if !strings.Contains(body, `<atom:link href="https://example.com/rss.xml" rel="self" type="application/rss+xml"></atom:link>`) {
		t.Errorf("feed missing atom self link")
	}

	var feed parsedRSS
	if err := xml.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("unmarshal feed: %v", err)
	}
	ch := feed.Channel
	if got, want := ch.Title, "テスト工業 - 技術情報・ブログ"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	if got, want := ch.LastBuildDate, "Mon, 01 Jul 2024 09:00:00 +0000"; got != want {
		t.Errorf("lastBuildDate = %q, want %q", got, want)
	}
	if got, want := ch.Copyright, "© 2024 Test Works. All rights reserved."; got != want {
		t.Errorf("copyright = %q, want %q", got, want)
	}
	if ch.TTL != 1440 {
		t.Errorf("ttl = %d, want 1440", ch.TTL)
	}
	if got, want := ch.Image.URL, "https://example.com/public/og.png"; got != want {
		t.Errorf("image url = %q, want %q", got, want)
	}

	if len(ch.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(ch.Items))
	}
	var titles []string
	for _, it := range ch.Items {
		titles = append(titles, it.Title)
	}
	if got, want := strings.Join(titles, ","), "CNC加工のコツ,品質管理の基本,旋盤加工入門"; got != want {
		t.Errorf("item order = %s, want %s", got, want)
	}

	lathe := ch.Items[2]
	if got, want := lathe.Link, "https://example.com/blog/lathe/"; got != want {
		t.Errorf("link = %q, want %q", got, want)
	}
	if lathe.GUID != lathe.Link {
		t.Errorf("guid = %q, want %q", lathe.GUID, lathe.Link)
	}
	if got, want := lathe.PubDate, "Wed, 10 Jan 2024 00:00:00 +0000"; got != want {
		t.Errorf("pubDate = %q, want %q", got, want)
	}
	if lathe.Creator != "田中" {
		t.Errorf("creator = %q, want %q", lathe.Creator, "田中")
	}
	if got, want := strings.Join(lathe.Categories, ","), "旋盤,CNC"; got != want {
		t.Errorf("categories = %q, want %q", got, want)
	}
	enc := lathe.Enclosure
	if enc.URL != "https://example.com/public/images/lathe.png" || enc.Type != "image/png" || enc.Length == 0 {
		t.Errorf("enclosure = %+v", enc)
	}
	for _, want := range []string{"旋盤の基本です。", "記事情報", "2024年1月10日水曜日", "著者：</strong>田中"} {
		if !strings.Contains(lathe.Encoded, want) {
			t.Errorf("content:encoded missing %q", want)
		}
	}
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := do(t, a, http.MethodGet, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var set struct {
		URLs []sitemapURL `xml:"url"`
	}
	if err := xml.Unmarshal(rec.Body.Bytes(), &set); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	want := []sitemapURL{
		{"https://example.com", "2024-06-01", "daily", "1.0"},
		{"https://example.com/about/", "", "monthly", "0.9"},
		{"https://example.com/services/", "", "monthly", "0.9"},
		{"https://example.com/blog/", "2024-06-01", "weekly", "0.8"},
		{"https://example.com/contact/", "", "monthly", "0.7"},
		{"https://example.com/blog/cnc/", "2024-06-01", "monthly", "0.6"},
		{"https://example.com/blog/qc/", "2024-03-05", "monthly", "0.6"},
		{"https://example.com/blog/lathe/", "2024-01-10", "monthly", "0.6"},
	}
	if len(set.URLs) != len(want) {
		t.Fatalf("got %d urls, want %d", len(set.URLs), len(want))
	}
	for i := range want {
		if set.URLs[i] != want[i] {
			t.Errorf("url[%d] = %+v, want %+v", i, set.URLs[i], want[i])
		}
	}
}

func TestBuildSitemapEmpty(t *testing.T) {
	b, err := BuildSitemap("https://example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "<lastmod>") {
		t.Errorf("empty sitemap has lastmod:\n%s", b)
	}
	if got := strings.Count(string(b), "<url>"); got != len(staticRoutes) {
		t.Errorf("got %d urls, want %d", got, len(staticRoutes))
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://example.com", "/public/a.png", "https://example.com/public/a.png"},
		{"https://example.com/", "images/a.png", "https://example.com/images/a.png"},
		{"https://example.com", "https://cdn.example/a.png", "https://cdn.example/a.png"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.base, tt.ref); got != tt.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}
