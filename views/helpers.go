package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/takeparts/partsite/content"
)

var weekdaysJa = [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FormatDate renders t as 2024年6月1日.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006年1月2日")
}

// FormatDateLong renders t with the weekday, as 2024年6月1日土曜日.
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return "日付不明"
	}
	return FormatDate(t) + weekdaysJa[t.Weekday()]
}

// TagURL is the listing page of tag.
func TagURL(tag string) string {
	return "/blog/tag/" + url.PathEscape(tag) + "/"
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

// PageHref links to page n of a listing, keeping the search query.
func PageHref(n int, query string) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if n > 1 {
		v.Set("page", strconv.Itoa(n))
	}
	if len(v) == 0 {
		return "?"
	}
	return "?" + v.Encode()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using site values.
func WebsiteJsonLD(site content.SiteConfig) template.JS {
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "WebSite",
		"name":       site.SiteName,
		"url":        buildURL(site.URL),
		"inLanguage": site.Language,
	}
	if site.SiteDescription != "" {
		data["description"] = site.SiteDescription
	}
	return marshalJsonLD(data)
}

// OrganizationJsonLD produces a Schema.org Organization block from the
// company profile.
func OrganizationJsonLD(site content.SiteConfig) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     site.Company.Name,
		"url":      buildURL(site.URL),
	}
	if site.Company.NameJa != "" {
		data["alternateName"] = site.Company.NameJa
	}
	if site.Company.EstablishedYear != "" {
		data["foundingDate"] = site.Company.EstablishedYear
	}
	if site.Contact.Email != "" || site.Contact.Phone != "" {
		point := map[string]string{"@type": "ContactPoint", "contactType": "customer service"}
		if site.Contact.Email != "" {
			point["email"] = site.Contact.Email
		}
		if site.Contact.Phone != "" {
			point["telephone"] = site.Contact.Phone
		}
		data["contactPoint"] = point
	}
	if site.Contact.Address != "" {
		data["address"] = site.Contact.Address
	}
	return marshalJsonLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site content.SiteConfig, post content.Post) template.JS {
	postURL := buildURL(site.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Frontmatter.Title,
		"description":   post.Frontmatter.Excerpt,
		"datePublished": post.PublishedAt.Format(time.RFC3339),
		"url":           postURL,
		"inLanguage":    site.Language,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Company.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Frontmatter.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  post.Frontmatter.Author,
		}
	}
	if len(post.Frontmatter.Tags) > 0 {
		data["keywords"] = strings.Join(post.Frontmatter.Tags, ", ")
	}
	if post.Frontmatter.Thumbnail != "" {
		data["image"] = absoluteURL(site.URL, post.Frontmatter.Thumbnail)
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

func absoluteURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
