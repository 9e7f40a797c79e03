package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

const (
	// PostsDir holds one file per blog post.
	PostsDir = "posts"
	// PagesDir holds one file per static page.
	PagesDir = "pages"
)

// contentExts are tried in order when resolving a slug to a file.
var contentExts = []string{".mdx", ".md"}

// Repository reads posts, pages and the site config from a content tree:
//
//	posts/*.mdx
//	pages/*.mdx
//	config.json
type Repository struct {
	fsys       fs.FS
	logger     Logger
	cache      *Cache
	excerptLen int
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for skipped files and fallbacks.
func WithLogger(l Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCache memoizes parsed files in c.
func WithCache(c *Cache) Option {
	return func(r *Repository) {
		r.cache = c
	}
}

// WithExcerptLength sets the length of generated excerpts.
func WithExcerptLength(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.excerptLen = n
		}
	}
}

// NewRepository creates a Repository over fsys.
func NewRepository(fsys fs.FS, opts ...Option) *Repository {
	r := &Repository{
		fsys:       fsys,
		excerptLen: DefaultExcerptLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = NewLogger()
	}
	return r
}

// NewDirRepository creates a Repository rooted at dir on the local disk.
func NewDirRepository(dir string, opts ...Option) *Repository {
	return NewRepository(os.DirFS(dir), opts...)
}

// GetAllPosts returns every published, valid post sorted by date, newest
// first. Files that fail to parse or validate are logged and skipped; only a
// cancelled context produces an error.
func (r *Repository) GetAllPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	_, err := r.scanPosts(ctx, func(post Post) bool {
		posts = append(posts, post)
		return true
	})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	SortByDate(posts)
	return posts, nil
}

// GetPostBySlug returns the published, valid post that GetAllPosts lists
// under slug. The boolean is false when there is none. When the file named
// after slug has a malformed metadata block and no other file claims the
// slug, the *ParseError is returned.
func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (Post, bool, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, false, err
	}
	if !validSlug(slug) {
		return Post{}, false, nil
	}
	var found Post
	ok := false
	parseErrs, err := r.scanPosts(ctx, func(post Post) bool {
		if post.Slug != slug {
			return true
		}
		found, ok = post, true
		return false
	})
	if err != nil {
		return Post{}, false, err
	}
	if ok {
		return found, true, nil
	}
	for _, ext := range contentExts {
		if perr, bad := parseErrs[path.Join(PostsDir, slug+ext)]; bad {
			return Post{}, false, perr
		}
	}
	return Post{}, false, nil
}

// scanPosts visits published, valid posts in file name order until visit
// returns false. A slug belongs to the first file that claims it; later
// claimants are skipped. Files that fail to parse are logged and returned
// keyed by path.
func (r *Repository) scanPosts(ctx context.Context, visit func(Post) bool) (map[string]error, error) {
	paths, err := r.listFiles(PostsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warnf("posts directory not found: %s", PostsDir)
		} else {
			r.logger.Errorf("list posts: %v", err)
		}
		return nil, nil
	}

	var parseErrs map[string]error
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.readRecord(p)
		if err != nil {
			r.logger.Errorf("skipping %s: %v", p, err)
			if parseErrs == nil {
				parseErrs = make(map[string]error)
			}
			parseErrs[p] = err
			continue
		}
		if !rec.Meta.IsPublished() {
			continue
		}
		post, err := r.buildPost(rec)
		if err != nil {
			r.logger.Warnf("skipping %s: %v", p, err)
			continue
		}
		if prev, dup := seen[post.Slug]; dup {
			r.logger.Warnf("skipping %s: slug %q already used by %s", p, post.Slug, prev)
			continue
		}
		seen[post.Slug] = p
		if !visit(post) {
			break
		}
	}
	return parseErrs, nil
}

// SortByDate orders posts newest first. Posts with equal dates keep their
// relative order.
func SortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

func (r *Repository) buildPost(rec Record) (Post, error) {
	if err := rec.ValidatePost(); err != nil {
		return Post{}, err
	}
	publishedAt, _ := ParseDate(rec.Meta.Date)
	fm := PostFrontmatter{
		Title:     strings.TrimSpace(rec.Meta.Title),
		Date:      dateString(rec.Meta.Date, publishedAt),
		Tags:      cleanTags(rec.Meta.Tags),
		Excerpt:   strings.TrimSpace(rec.Meta.Excerpt),
		Thumbnail: strings.TrimSpace(rec.Meta.Thumbnail),
		Author:    strings.TrimSpace(rec.Meta.Author),
		Published: true,
	}
	if fm.Excerpt == "" {
		fm.Excerpt = GenerateExcerpt(rec.Body, r.excerptLen)
	}
	return Post{
		Slug:        recordSlug(rec),
		Frontmatter: fm,
		Content:     rec.Body,
		ReadingTime: ReadingTime(rec.Body),
		PublishedAt: publishedAt,
		Path:        rec.Path,
	}, nil
}

// readRecord reads and parses path, consulting the cache first. Missing
// files are never cached.
func (r *Repository) readRecord(p string) (Record, error) {
	if r.cache != nil {
		if e, ok := r.cache.get(p); ok {
			return e.record, e.err
		}
	}
	src, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		return Record{}, err
	}
	rec, err := ParseRecord(p, src)
	if r.cache != nil {
		r.cache.put(p, rec, err)
	}
	return rec, err
}

// listFiles returns the content files directly under dir, sorted by name.
func (r *Repository) listFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isContentFile(e.Name()) {
			continue
		}
		paths = append(paths, path.Join(dir, e.Name()))
	}
	return paths, nil
}

func isContentFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, want := range contentExts {
		if ext == want {
			return true
		}
	}
	return false
}

// recordSlug prefers an explicit slug, then the file stem, then the title.
func recordSlug(rec Record) string {
	if s := strings.TrimSpace(rec.Meta.Slug); s != "" {
		return s
	}
	base := path.Base(rec.Path)
	stem := strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
	if stem != "" {
		return stem
	}
	return Slugify(rec.Meta.Title)
}

func validSlug(slug string) bool {
	if slug == "" || strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return false
	}
	return fs.ValidPath(slug)
}

func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
