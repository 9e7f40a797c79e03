package partsite

import (
	"context"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/takeparts/partsite/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// staticRoute is a fixed page of the corporate site.
type staticRoute struct {
	segments   []string
	changeFreq string
	priority   string
}

var staticRoutes = []staticRoute{
	{nil, "daily", "1.0"},
	{[]string{"about"}, "monthly", "0.9"},
	{[]string{"services"}, "monthly", "0.9"},
	{[]string{"blog"}, "weekly", "0.8"},
	{[]string{"contact"}, "monthly", "0.7"},
}

// BuildSitemap renders the sitemap: the static routes followed by one entry
// per post. The home page and blog index carry the newest post date.
func BuildSitemap(base string, posts []content.Post) ([]byte, error) {
	newest := ""
	if len(posts) > 0 {
		newest = posts[0].PublishedAt.Format("2006-01-02")
	}

	urls := make([]sitemapURL, 0, len(staticRoutes)+len(posts))
	for _, r := range staticRoutes {
		u := sitemapURL{
			Loc:        BuildURL(base, r.segments...),
			ChangeFreq: r.changeFreq,
			Priority:   r.priority,
		}
		if len(r.segments) == 0 || r.segments[0] == "blog" {
			u.LastMod = newest
		}
		urls = append(urls, u)
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, "blog", p.Slug),
			LastMod:    p.PublishedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	return encodeXML(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func (a *App) sitemap(ctx context.Context) ([]byte, error) {
	posts, err := a.Cache.Posts(ctx, "")
	if err != nil {
		return nil, err
	}
	return BuildSitemap(a.siteConfig(ctx).URL, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	b, err := a.sitemap(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", b)
}
