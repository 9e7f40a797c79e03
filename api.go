package partsite

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/takeparts/partsite/content"
	"github.com/takeparts/partsite/markdown"
)

// maxRelatedLimit caps the limit query parameter of the related-posts API.
const maxRelatedLimit = 20

type apiError struct {
	Error string `json:"error"`
}

// PostSummary is the listing shape of a post, used by the JSON API and the
// exported search index. It omits the body.
type PostSummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	ReadingTime int      `json:"readingTime"`
	URL         string   `json:"url"`
}

// Summarize converts posts to their listing shape.
func Summarize(posts []content.Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		tags := p.Frontmatter.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, PostSummary{
			Slug:        p.Slug,
			Title:       p.Frontmatter.Title,
			Date:        p.Frontmatter.Date,
			Excerpt:     p.Frontmatter.Excerpt,
			Tags:        tags,
			Author:      p.Frontmatter.Author,
			Thumbnail:   p.Frontmatter.Thumbnail,
			ReadingTime: p.ReadingTime,
			URL:         p.Link(),
		})
	}
	return out
}

type postListResponse struct {
	Posts      []PostSummary `json:"posts"`
	Query      string        `json:"query,omitempty"`
	Tag        string        `json:"tag,omitempty"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	TotalPosts int           `json:"totalPosts"`
	TotalPages int           `json:"totalPages"`
}

type postResponse struct {
	PostSummary
	HTML     string             `json:"html"`
	Headings []markdown.Heading `json:"headings"`
}

// handleAPIPosts searches and pages the post listing: ?q=, ?tag=, ?page=.
func (a *App) handleAPIPosts(c echo.Context) error {
	ctx := c.Request().Context()
	tag := strings.TrimSpace(c.QueryParam("tag"))
	posts, err := a.Cache.Posts(ctx, tag)
	if err != nil {
		return err
	}
	query := c.QueryParam("q")
	res := content.Paginate(content.FilterPosts(posts, query), pageParam(c), content.PostsPerPage)
	return c.JSON(http.StatusOK, postListResponse{
		Posts:      Summarize(res.Posts),
		Query:      strings.TrimSpace(query),
		Tag:        tag,
		Page:       res.Page,
		PerPage:    res.PerPage,
		TotalPosts: res.TotalPosts,
		TotalPages: res.TotalPages,
	})
}

func (a *App) handleAPIPost(c echo.Context) error {
	ctx := c.Request().Context()
	slug, err := pathParam(c, "slug")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	post, ok, err := a.Cache.Post(ctx, slug)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	body, err := markdown.Render(post.Content)
	if err != nil {
		return err
	}
	headings := markdown.Headings(post.Content)
	if headings == nil {
		headings = []markdown.Heading{}
	}
	return c.JSON(http.StatusOK, postResponse{
		PostSummary: Summarize([]content.Post{post})[0],
		HTML:        string(body),
		Headings:    headings,
	})
}

// handleAPIRelated returns related posts: ?limit= (default 3, at most 20).
func (a *App) handleAPIRelated(c echo.Context) error {
	limit := content.DefaultRelatedLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = min(n, maxRelatedLimit)
	}
	slug, err := pathParam(c, "slug")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	related, ok, err := a.Cache.Related(c.Request().Context(), slug, limit)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, Summarize(related))
}

func (a *App) handleAPITags(c echo.Context) error {
	tags, err := a.Cache.TagCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (a *App) handleAPIConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, a.siteConfig(c.Request().Context()))
}

func isAPI(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
