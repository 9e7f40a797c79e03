package content

import (
	"context"
	"sort"
)

// DefaultRelatedLimit is the number of related posts shown under an article.
const DefaultRelatedLimit = 3

// RelatedPosts ranks posts by the number of distinct tags they share with ref.
// Ties go to the newer post, then to the lower slug. Posts sharing no tag are
// dropped; if fewer than limit remain, the most recent other posts fill the
// gap. ref itself is never returned.
func RelatedPosts(posts []Post, ref Post, limit int) []Post {
	if limit <= 0 {
		return []Post{}
	}

	refTags := make(map[string]struct{}, len(ref.Frontmatter.Tags))
	for _, t := range ref.Frontmatter.Tags {
		refTags[t] = struct{}{}
	}

	type scored struct {
		post  Post
		score int
	}
	var ranked []scored
	for _, p := range posts {
		if p.Slug == ref.Slug {
			continue
		}
		if n := sharedTags(p, refTags); n > 0 {
			ranked = append(ranked, scored{post: p, score: n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.post.PublishedAt.Equal(b.post.PublishedAt) {
			return a.post.PublishedAt.After(b.post.PublishedAt)
		}
		return a.post.Slug < b.post.Slug
	})

	out := make([]Post, 0, limit)
	chosen := make(map[string]struct{}, limit)
	for _, s := range ranked {
		if len(out) == limit {
			return out
		}
		out = append(out, s.post)
		chosen[s.post.Slug] = struct{}{}
	}

	recent := make([]Post, len(posts))
	copy(recent, posts)
	SortByDate(recent)
	for _, p := range recent {
		if len(out) == limit {
			break
		}
		if p.Slug == ref.Slug {
			continue
		}
		if _, ok := chosen[p.Slug]; ok {
			continue
		}
		out = append(out, p)
		chosen[p.Slug] = struct{}{}
	}
	return out
}

// sharedTags counts the distinct tags of p that appear in refTags.
func sharedTags(p Post, refTags map[string]struct{}) int {
	if len(refTags) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(p.Frontmatter.Tags))
	n := 0
	for _, t := range p.Frontmatter.Tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := refTags[t]; ok {
			n++
		}
	}
	return n
}

// GetRelatedPosts returns up to limit posts related to the post with slug.
// An unknown slug yields an empty list.
func (r *Repository) GetRelatedPosts(ctx context.Context, slug string, limit int) ([]Post, error) {
	posts, err := r.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return RelatedPosts(posts, p, limit), nil
		}
	}
	return []Post{}, nil
}
