// Package views holds the default page templates. Each component is an
// html/template page adapted to templ.Component, so handlers and user
// overrides share one interface.
package views

import (
	"html/template"

	"github.com/takeparts/partsite/content"
	"github.com/takeparts/partsite/markdown"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // absolute og:image
}

// pageData is the value every page template executes against.
type pageData struct {
	Site   content.SiteConfig
	Meta   PageMeta
	JSONLD []template.JS
	Year   int

	Page    content.Page
	Post    content.Post
	Posts   []content.Post
	Related []content.Post
	TOC     []markdown.Heading

	Listing   content.PageResult
	Tags      []content.TagCount
	Query     string
	ActiveTag string
}
