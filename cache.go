package partsite

import (
	"context"
	"sync"
	"time"

	"github.com/takeparts/partsite/content"
)

// PostCache is an in-memory snapshot of the published post listing and tag
// counts with TTL. Per-file parse results live in the content.Cache below it.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	tags    []content.TagCount
	fetched time.Time
	ttl     time.Duration
	repo    *content.Repository
	files   *content.Cache
}

// NewPostCache creates a PostCache backed by repo. files may be nil when the
// repository does not memoize parsed files.
func NewPostCache(repo *content.Repository, files *content.Cache, ttl time.Duration) *PostCache {
	return &PostCache{repo: repo, files: files, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate drops the listing snapshot and the parsed file at path, so the
// next read reloads. It satisfies content.Invalidator.
func (c *PostCache) Invalidate(path string) {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
	if c.files != nil {
		c.files.Invalidate(path)
	}
}

// InvalidateAll drops every cached value.
func (c *PostCache) InvalidateAll() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
	if c.files != nil {
		c.files.InvalidateAll()
	}
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.repo.GetAllPosts(ctx)
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = content.TagCounts(posts)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and tags after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]content.Post, []content.TagCount, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// Posts returns published posts newest first, optionally restricted to tag.
// The returned slice is shared; callers must not modify it.
func (c *PostCache) Posts(ctx context.Context, tag string) ([]content.Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	return content.PostsByTag(posts, tag), nil
}

// TagCounts returns the per-tag post counts of the cached listing.
func (c *PostCache) TagCounts(ctx context.Context) ([]content.TagCount, error) {
	_, tags, err := c.ensureLoaded(ctx)
	return tags, err
}

// Post returns the published post with slug. A slug missing from the cached
// listing is looked up in the repository, which reports files that no longer
// parse and posts added since the snapshot was taken.
func (c *PostCache) Post(ctx context.Context, slug string) (content.Post, bool, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return content.Post{}, false, err
	}
	if p, ok := findPost(posts, slug); ok {
		return p, true, nil
	}
	return c.repo.GetPostBySlug(ctx, slug)
}

// Related returns up to limit posts related to the post with slug. ok is
// false when slug is unknown.
func (c *PostCache) Related(ctx context.Context, slug string, limit int) ([]content.Post, bool, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, false, err
	}
	p, ok, err := c.Post(ctx, slug)
	if err != nil || !ok {
		return nil, false, err
	}
	return content.RelatedPosts(posts, p, limit), true, nil
}

func findPost(posts []content.Post, slug string) (content.Post, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return content.Post{}, false
}
