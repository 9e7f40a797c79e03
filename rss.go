package partsite

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/takeparts/partsite/content"
	"github.com/takeparts/partsite/markdown"
	"github.com/takeparts/partsite/views"
)

const (
	nsContent = "http://purl.org/rss/1.0/modules/content/"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsAtom    = "http://www.w3.org/2005/Atom"

	feedPath = "rss.xml"
)

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	DCNS      string     `xml:"xmlns:dc,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	Description    string    `xml:"description"`
	Language       string    `xml:"language"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	WebMaster      string    `xml:"webMaster,omitempty"`
	Copyright      string    `xml:"copyright,omitempty"`
	LastBuildDate  string    `xml:"lastBuildDate"`
	Generator      string    `xml:"generator"`
	Docs           string    `xml:"docs"`
	TTL            int       `xml:"ttl"`
	AtomLink       atomLink  `xml:"atom:link"`
	Image          *rssImage `xml:"image,omitempty"`
	Categories     []string  `xml:"category"`
	Items          []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	Content     cdata         `xml:"content:encoded"`
	GUID        rssGUID       `xml:"guid"`
	PubDate     string        `xml:"pubDate"`
	Creator     string        `xml:"dc:creator,omitempty"`
	Categories  []string      `xml:"category"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// BuildRSS renders the RSS 2.0 feed for posts, which must already be sorted
// newest first.
func (a *App) BuildRSS(site content.SiteConfig, posts []content.Post) ([]byte, error) {
	base := site.URL
	now := a.now()

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		item, err := a.rssItem(site, p)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	editor := ""
	if site.Contact.Email != "" {
		editor = fmt.Sprintf("%s (%s)", site.Contact.Email, site.Company.Name)
	}
	feed := rssXML{
		Version:   "2.0",
		ContentNS: nsContent,
		DCNS:      nsDC,
		AtomNS:    nsAtom,
		Channel: rssChannel{
			Title:          site.SiteName + " - 技術情報・ブログ",
			Link:           base,
			Description:    site.SiteDescription,
			Language:       site.Language,
			ManagingEditor: editor,
			WebMaster:      editor,
			Copyright:      fmt.Sprintf("© %d %s. All rights reserved.", now.Year(), site.Company.Name),
			LastBuildDate:  now.Format(time.RFC1123Z),
			Generator:      "partsite",
			Docs:           "https://www.rssboard.org/rss-specification",
			TTL:            a.Config.FeedTTL,
			AtomLink: atomLink{
				Href: strings.TrimSuffix(base, "/") + "/" + feedPath,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Categories: site.SEO.Keywords,
			Items:      items,
		},
	}
	if site.SEO.OGImage != "" {
		feed.Channel.Image = &rssImage{
			URL:   AbsoluteURL(base, site.SEO.OGImage),
			Title: site.SiteName,
			Link:  base,
		}
	}
	return encodeXML(feed)
}

func (a *App) rssItem(site content.SiteConfig, p content.Post) (rssItem, error) {
	postURL := BuildURL(site.URL, "blog", p.Slug)
	body, err := markdown.Render(p.Content)
	if err != nil {
		return rssItem{}, fmt.Errorf("partsite: rss %s: %w", p.Slug, err)
	}
	item := rssItem{
		Title:       p.Frontmatter.Title,
		Link:        postURL,
		Description: p.Frontmatter.Excerpt,
		Content:     cdata{Text: articleHTML(p, body, postURL)},
		GUID:        rssGUID{IsPermaLink: true, Value: postURL},
		PubDate:     p.PublishedAt.Format(time.RFC1123Z),
		Creator:     p.Frontmatter.Author,
		Categories:  p.Frontmatter.Tags,
	}
	if img, ok := a.thumbnail(site.URL, p.Frontmatter.Thumbnail); ok {
		item.Enclosure = &rssEnclosure{URL: img.URL, Length: img.Length, Type: img.Type}
	}
	return item, nil
}

// articleHTML is the content:encoded body: excerpt, rendered article, an
// article info block and a link back to the site.
func articleHTML(p content.Post, body []byte, postURL string) string {
	fm := p.Frontmatter
	var b strings.Builder
	b.WriteString("<div>")
	if fm.Excerpt != "" {
		b.WriteString("<p><strong>概要：</strong>" + html.EscapeString(fm.Excerpt) + "</p>")
	}
	if src := markdown.SafeURL(fm.Thumbnail); src != "" {
		b.WriteString(`<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(fm.Title) + `"/>`)
	}
	b.Write(body)
	b.WriteString("<hr/><h3>記事情報</h3><ul>")
	b.WriteString("<li><strong>投稿日：</strong>" + views.FormatDateLong(p.PublishedAt) + "</li>")
	if fm.Author != "" {
		b.WriteString("<li><strong>著者：</strong>" + html.EscapeString(fm.Author) + "</li>")
	}
	b.WriteString("<li><strong>読了時間：</strong>約" + strconv.Itoa(p.ReadingTime) + "分</li>")
	if len(fm.Tags) > 0 {
		b.WriteString("<li><strong>タグ：</strong>" + html.EscapeString(strings.Join(fm.Tags, ", ")) + "</li>")
	}
	b.WriteString("</ul>")
	b.WriteString(`<p><a href="` + html.EscapeString(postURL) + `">記事の詳細を見る →</a></p>`)
	b.WriteString("</div>")
	return b.String()
}

func (a *App) feed(ctx context.Context) ([]byte, error) {
	posts, err := a.Cache.Posts(ctx, "")
	if err != nil {
		return nil, err
	}
	return a.BuildRSS(a.siteConfig(ctx), posts)
}

func (a *App) handleFeed(c echo.Context) error {
	b, err := a.feed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", b)
}
