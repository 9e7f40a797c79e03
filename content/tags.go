package content

import (
	"context"
	"sort"
)

// AllTags returns the distinct tags of posts in ascending order.
func AllTags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Frontmatter.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// PostsByTag returns the posts whose tag list contains tag exactly, in their
// original order.
func PostsByTag(posts []Post, tag string) []Post {
	var out []Post
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// TagCounts returns how many posts carry each tag, ordered like AllTags.
// A post listing a tag twice counts once.
func TagCounts(posts []Post) []TagCount {
	tags := AllTags(posts)
	counts := make([]TagCount, 0, len(tags))
	for _, t := range tags {
		counts = append(counts, TagCount{Tag: t, Count: len(PostsByTag(posts, t))})
	}
	return counts
}

// GetAllTags returns the tag index of the current post listing.
func (r *Repository) GetAllTags(ctx context.Context) ([]string, error) {
	posts, err := r.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return AllTags(posts), nil
}

// GetPostsByTag returns the published posts tagged tag, newest first.
func (r *Repository) GetPostsByTag(ctx context.Context, tag string) ([]Post, error) {
	posts, err := r.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return PostsByTag(posts, tag), nil
}

// GetTagCounts returns per-tag post counts, recomputed on every call.
func (r *Repository) GetTagCounts(ctx context.Context) ([]TagCount, error) {
	posts, err := r.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return TagCounts(posts), nil
}
