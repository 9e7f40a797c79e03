package views

import (
	"context"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/takeparts/partsite/content"
	"github.com/takeparts/partsite/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date":      FormatDate,
	"dateLong":  FormatDateLong,
	"join":      strings.Join,
	"tagURL":    TagURL,
	"tagClass":  TagClass,
	"pageHref":  PageHref,
	"markdown":  renderMarkdown,
	"safeURL":   safeURL,
	"hasPrefix": strings.HasPrefix,
	"add":       func(a, b int) int { return a + b },
}

var (
	homeTmpl     = parsePage("home")
	blogTmpl     = parsePage("blog")
	postTmpl     = parsePage("post")
	pageTmpl     = parsePage("page")
	notFoundTmpl = parsePage("notfound")
	errorTmpl    = parsePage("error")
)

// parsePage builds the template set for one page: the shared layout and
// partials plus the page's own content block. The returned template is the
// layout entry point.
func parsePage(name string) *template.Template {
	t := template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/partials.html",
		"templates/"+name+".html",
	))
	return t.Lookup("layout")
}

func renderMarkdown(src string) (template.HTML, error) {
	return templ.ToGoHTML(context.Background(), markdown.Component(src))
}

// safeURL passes URLs accepted by markdown.SafeURL through html/template's
// URL filter.
func safeURL(raw string) template.URL {
	return template.URL(markdown.SafeURL(raw))
}

func newData(site content.SiteConfig, meta PageMeta) pageData {
	if meta.Title == "" {
		meta.Title = site.SEO.DefaultTitle
		if meta.Title == "" {
			meta.Title = site.SiteName
		}
	} else {
		meta.Title += " | " + site.SiteName
	}
	if meta.Description == "" {
		meta.Description = site.SEO.DefaultDescription
		if meta.Description == "" {
			meta.Description = site.SiteDescription
		}
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.Image == "" && site.SEO.OGImage != "" {
		meta.Image = absoluteURL(site.URL, site.SEO.OGImage)
	}
	return pageData{Site: site, Meta: meta, Year: time.Now().Year()}
}

// Home renders the landing page: the home page body followed by the most
// recent posts.
func Home(site content.SiteConfig, page content.Page, recent []content.Post) templ.Component {
	d := newData(site, PageMeta{
		Description: page.Frontmatter.Description,
		URL:         buildURL(site.URL, ""),
	})
	d.JSONLD = []template.JS{OrganizationJsonLD(site), WebsiteJsonLD(site)}
	d.Page = page
	d.Posts = recent
	return templ.FromGoHTML(homeTmpl, d)
}

// Blog renders the blog index or a tag page with search box, tag cloud and
// pagination.
func Blog(site content.SiteConfig, listing content.PageResult, tags []content.TagCount, query, activeTag string) templ.Component {
	meta := PageMeta{Title: "ブログ", URL: buildURL(site.URL, "blog")}
	if activeTag != "" {
		meta.Title = activeTag + " の記事"
		meta.URL = buildURL(site.URL, "blog", "tag", activeTag)
	}
	d := newData(site, meta)
	d.JSONLD = []template.JS{WebsiteJsonLD(site)}
	d.Listing = listing
	d.Tags = tags
	d.Query = query
	d.ActiveTag = activeTag
	return templ.FromGoHTML(blogTmpl, d)
}

// BlogList renders only the result list of a listing, for htmx swaps.
func BlogList(listing content.PageResult, query, activeTag string) templ.Component {
	return templ.FromGoHTML(blogTmpl.Lookup("bloglist"), pageData{
		Listing:   listing,
		Query:     query,
		ActiveTag: activeTag,
	})
}

// Post renders one article with its table of contents and related posts.
func Post(site content.SiteConfig, post content.Post, related []content.Post, toc []markdown.Heading) templ.Component {
	meta := PageMeta{
		Title:       post.Frontmatter.Title,
		Description: post.Frontmatter.Excerpt,
		URL:         buildURL(site.URL, "blog", post.Slug),
		OGType:      "article",
	}
	if post.Frontmatter.Thumbnail != "" {
		meta.Image = absoluteURL(site.URL, post.Frontmatter.Thumbnail)
	}
	d := newData(site, meta)
	d.JSONLD = []template.JS{BlogPostingJsonLD(site, post)}
	d.Post = post
	d.Related = related
	d.TOC = toc
	return templ.FromGoHTML(postTmpl, d)
}

// Page renders a static page such as /about/ or /services/.
func Page(site content.SiteConfig, page content.Page) templ.Component {
	d := newData(site, PageMeta{
		Title:       page.Frontmatter.Title,
		Description: page.Frontmatter.Description,
		URL:         buildURL(site.URL, page.Slug),
	})
	d.Page = page
	return templ.FromGoHTML(pageTmpl, d)
}

// NotFound renders the 404 page.
func NotFound(site content.SiteConfig) templ.Component {
	return templ.FromGoHTML(notFoundTmpl, newData(site, PageMeta{Title: "ページが見つかりません"}))
}

// ServerError renders the 500 page.
func ServerError(site content.SiteConfig) templ.Component {
	return templ.FromGoHTML(errorTmpl, newData(site, PageMeta{Title: "エラーが発生しました"}))
}
