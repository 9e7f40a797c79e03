package content

import (
	"strings"

	"golang.org/x/text/cases"
)

// PostsPerPage is the size of one blog listing page (a 3x3 grid).
const PostsPerPage = 9

// FilterPosts returns the posts whose title, excerpt, any tag or author
// contains query, ignoring case. A blank query returns posts unchanged.
func FilterPosts(posts []Post, query string) []Post {
	q := strings.TrimSpace(query)
	if q == "" {
		return posts
	}
	fold := cases.Fold()
	q = fold.String(q)

	contains := func(field string) bool {
		return field != "" && strings.Contains(fold.String(field), q)
	}

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		fm := p.Frontmatter
		match := contains(fm.Title) || contains(fm.Excerpt) || contains(fm.Author)
		for _, t := range fm.Tags {
			if match {
				break
			}
			match = contains(t)
		}
		if match {
			out = append(out, p)
		}
	}
	return out
}

// PageResult is one page of a post listing.
type PageResult struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalPosts int    `json:"totalPosts"`
	TotalPages int    `json:"totalPages"`
}

// HasPrev reports whether a previous page exists.
func (r PageResult) HasPrev() bool { return r.Page > 1 }

// HasNext reports whether a next page exists.
func (r PageResult) HasNext() bool { return r.Page < r.TotalPages }

// Paginate slices posts into pages of perPage and returns page, clamped to
// the valid range. perPage <= 0 uses PostsPerPage.
func Paginate(posts []Post, page, perPage int) PageResult {
	if perPage <= 0 {
		perPage = PostsPerPage
	}
	total := len(posts)
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return PageResult{
		Posts:      posts[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPosts: total,
		TotalPages: pages,
	}
}
