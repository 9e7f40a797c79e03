// Package content loads the site's Markdown/MDX content from disk and derives
// everything the presentation layer needs from it: the sorted post listing,
// tag index, related posts, search results, static pages and site config.
//
// Content is immutable for the life of a build. A Repository only reads files;
// every operation returns fresh values that callers may keep or modify.
package content

import "time"

// PostFrontmatter is the validated metadata block of a blog post.
type PostFrontmatter struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags,omitempty"`
	Excerpt   string   `json:"excerpt,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Author    string   `json:"author,omitempty"`
	Published bool     `json:"published"`
}

// Post is a published blog post with its derived fields.
type Post struct {
	Slug        string          `json:"slug"`
	Frontmatter PostFrontmatter `json:"frontmatter"`
	Content     string          `json:"content"`
	ReadingTime int             `json:"readingTime"`
	PublishedAt time.Time       `json:"publishedAt"`
	Path        string          `json:"-"`
}

// HasTag reports whether the post carries tag exactly as stored.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Frontmatter.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Link returns the site-relative URL of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// PageFrontmatter is the validated metadata block of a static page.
type PageFrontmatter struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Published   bool   `json:"published"`
}

// Page is a published static page such as "about" or "home".
type Page struct {
	Slug        string          `json:"slug"`
	Frontmatter PageFrontmatter `json:"frontmatter"`
	Content     string          `json:"content"`
}

// TagCount pairs a tag with the number of posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SiteConfig is the singleton site-wide configuration read from
// content/config.json (or config.yaml).
type SiteConfig struct {
	SiteName        string    `json:"siteName" yaml:"siteName"`
	SiteDescription string    `json:"siteDescription" yaml:"siteDescription"`
	Language        string    `json:"language" yaml:"language"`
	URL             string    `json:"url" yaml:"url"`
	Company         Company   `json:"company" yaml:"company"`
	Contact         Contact   `json:"contact" yaml:"contact"`
	Navigation      []NavItem `json:"navigation" yaml:"navigation"`
	SEO             SEO       `json:"seo" yaml:"seo"`
}

// Company describes the business behind the site.
type Company struct {
	Name            string   `json:"name" yaml:"name"`
	NameJa          string   `json:"nameJa" yaml:"nameJa"`
	EstablishedYear string   `json:"establishedYear" yaml:"establishedYear"`
	Employees       string   `json:"employees" yaml:"employees"`
	Certification   []string `json:"certification" yaml:"certification"`
	Specialties     []string `json:"specialties" yaml:"specialties"`
}

// Contact holds the public contact details.
type Contact struct {
	Email         string `json:"email" yaml:"email"`
	Phone         string `json:"phone" yaml:"phone"`
	Address       string `json:"address" yaml:"address"`
	BusinessHours string `json:"businessHours" yaml:"businessHours"`
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

// SEO holds fallback metadata for pages that do not set their own.
type SEO struct {
	DefaultTitle       string   `json:"defaultTitle" yaml:"defaultTitle"`
	DefaultDescription string   `json:"defaultDescription" yaml:"defaultDescription"`
	OGImage            string   `json:"ogImage" yaml:"ogImage"`
	Keywords           []string `json:"keywords" yaml:"keywords"`
}

// DefaultSiteConfig returns the built-in configuration used when
// config.json is missing or unreadable.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		SiteName:        "Take Parts Factory",
		SiteDescription: "日本の製造業・部品製造会社",
		Language:        "ja",
		URL:             "https://take-parts-factory.pages.dev",
		Company: Company{
			Name: "Take Parts Factory",
		},
		Contact: Contact{
			Email: "info@take-parts-factory.com",
		},
		Navigation: []NavItem{
			{Name: "ホーム", Href: "/"},
			{Name: "会社概要", Href: "/about/"},
			{Name: "サービス", Href: "/services/"},
			{Name: "ブログ", Href: "/blog/"},
			{Name: "お問い合わせ", Href: "/contact/"},
		},
	}
}

func (c *SiteConfig) setDefaults() {
	def := DefaultSiteConfig()
	if c.SiteName == "" {
		c.SiteName = def.SiteName
	}
	if c.SiteDescription == "" {
		c.SiteDescription = def.SiteDescription
	}
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.URL == "" {
		c.URL = def.URL
	}
	if c.Company.Name == "" {
		c.Company.Name = c.SiteName
	}
	if c.Contact.Email == "" {
		c.Contact.Email = def.Contact.Email
	}
	if len(c.Navigation) == 0 {
		c.Navigation = def.Navigation
	}
}
