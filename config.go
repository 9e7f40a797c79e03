package partsite

import (
	"io/fs"
	"time"

	"github.com/takeparts/partsite/content"
)

// Config holds the server-side settings of a partsite instance. Site identity
// (name, URL, company, navigation) lives in the content tree's config file
// and is read through content.Repository.GetSiteConfig.
type Config struct {
	ContentDir string // Content root with posts/, pages/ and config.json (default "content")
	StaticDir  string // Static assets served under /public and probed for thumbnails (default "public")
	Addr       string // Listen address (default ":3000")
	BaseURL    string // Overrides the site config URL in feeds and sitemaps when set

	PostCacheTTL  time.Duration // Lifetime of the post listing and parsed files (default 5min)
	FeedTTL       int           // RSS <ttl> in minutes (default 1440)
	ExcerptLength int           // Generated excerpt length in runes (default 160)

	SearchLimit  int           // Search API requests per window and IP (default 30)
	SearchWindow time.Duration // Search rate limit window (default 1min)

	Watch bool // Invalidate caches when content files change
}

func (c *Config) setDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.FeedTTL == 0 {
		c.FeedTTL = 1440
	}
	if c.ExcerptLength == 0 {
		c.ExcerptLength = content.DefaultExcerptLength
	}
	if c.SearchLimit == 0 {
		c.SearchLimit = 30
	}
	if c.SearchWindow == 0 {
		c.SearchWindow = time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContentFS reads content from fsys instead of Config.ContentDir. File
// watching is unavailable in that case.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithStaticFS reads thumbnails for feed enclosures from fsys instead of
// Config.StaticDir.
func WithStaticFS(fsys fs.FS) Option {
	return func(a *App) {
		a.staticFS = fsys
	}
}

// WithClock replaces time.Now for feed build dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithLogger sets the logger shared by the content repository and the
// request logger.
func WithLogger(l content.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
