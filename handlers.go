package partsite

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/takeparts/partsite/content"
	"github.com/takeparts/partsite/markdown"
)

// homeRecentPosts is the number of posts teased on the home page.
const homeRecentPosts = 3

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	site := a.siteConfig(ctx)
	page, ok, err := a.Repo.GetPageContent(ctx, content.HomePage)
	if err != nil {
		return err
	}
	if !ok {
		page = content.Page{Slug: content.HomePage, Frontmatter: content.PageFrontmatter{Title: site.SiteName}}
	}
	posts, err := a.Cache.Posts(ctx, "")
	if err != nil {
		return err
	}
	if len(posts) > homeRecentPosts {
		posts = posts[:homeRecentPosts]
	}
	return Render(c, a.Views.Home(site, page, posts))
}

func (a *App) handleBlog(c echo.Context) error {
	return a.renderListing(c, "")
}

func (a *App) handleTag(c echo.Context) error {
	tag, err := pathParam(c, "tag")
	if err != nil || tag == "" {
		return echo.ErrNotFound
	}
	return a.renderListing(c, tag)
}

// pathParam returns the decoded value of a path parameter. Echo matches on
// URL.RawPath when the request carries one, leaving parameters escaped;
// otherwise they are already decoded and must not be unescaped again.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// renderListing serves the blog index and tag pages. htmx requests get only
// the result list so search and paging can swap it in place.
func (a *App) renderListing(c echo.Context, tag string) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.Posts(ctx, tag)
	if err != nil {
		return err
	}
	if tag != "" && len(posts) == 0 {
		return echo.ErrNotFound
	}
	query := c.QueryParam("q")
	listing := content.Paginate(content.FilterPosts(posts, query), pageParam(c), content.PostsPerPage)

	if c.Request().Header.Get("HX-Request") == "true" {
		return Render(c, a.Views.BlogList(listing, query, tag))
	}
	tags, err := a.Cache.TagCounts(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Blog(a.siteConfig(ctx), listing, tags, query, tag))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug, err := pathParam(c, "slug")
	if err != nil {
		return echo.ErrNotFound
	}
	post, ok, err := a.Cache.Post(ctx, slug)
	if err != nil {
		return err
	}
	if !ok {
		return echo.ErrNotFound
	}
	related, _, err := a.Cache.Related(ctx, slug, content.DefaultRelatedLimit)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(a.siteConfig(ctx), post, related, markdown.Headings(post.Content)))
}

func (a *App) handlePage(c echo.Context) error {
	ctx := c.Request().Context()
	slug, err := pathParam(c, "page")
	if err != nil {
		return echo.ErrNotFound
	}
	if slug == content.HomePage {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}
	page, ok, err := a.Repo.GetPageContent(ctx, slug)
	if err != nil {
		return err
	}
	if !ok {
		return echo.ErrNotFound
	}
	return Render(c, a.Views.Page(a.siteConfig(ctx), page))
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, robotsTxt(a.siteConfig(c.Request().Context()).URL))
}

// pageParam reads the 1-based page query parameter. Anything unparsable is
// page 1; Paginate clamps the rest.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return n
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if isAPI(c) {
		if code >= 500 {
			c.Logger().Errorf("server error: %v", err)
		}
		msg := http.StatusText(code)
		if ok && code < 500 {
			if s, isStr := he.Message.(string); isStr {
				msg = s
			}
		}
		_ = c.JSON(code, apiError{Error: msg})
		return
	}

	site := a.siteConfig(c.Request().Context())
	if code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(site))
		return
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
