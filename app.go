// Package partsite serves the Take Parts Factory corporate site: static pages,
// a tagged and searchable blog, RSS and sitemap feeds, and a small JSON API.
// All content comes from Markdown/MDX files read through the content package.
//
// Users can replace any page template through ViewFuncs; partsite handles
// routing, caching, feeds and middleware.
package partsite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/takeparts/partsite/content"
	"github.com/takeparts/partsite/markdown"
	"github.com/takeparts/partsite/views"
)

// ViewFuncs holds the templ components the handlers render. Any nil field
// falls back to the default view from the views package.
type ViewFuncs struct {
	Home        func(site content.SiteConfig, page content.Page, recent []content.Post) templ.Component
	Blog        func(site content.SiteConfig, listing content.PageResult, tags []content.TagCount, query, activeTag string) templ.Component
	BlogList    func(listing content.PageResult, query, activeTag string) templ.Component
	Post        func(site content.SiteConfig, post content.Post, related []content.Post, toc []markdown.Heading) templ.Component
	Page        func(site content.SiteConfig, page content.Page) templ.Component
	NotFound    func(site content.SiteConfig) templ.Component
	ServerError func(site content.SiteConfig) templ.Component
}

// DefaultViews returns the built-in templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Blog:        views.Blog,
		BlogList:    views.BlogList,
		Post:        views.Post,
		Page:        views.Page,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) fillDefaults() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Blog == nil {
		v.Blog = d.Blog
	}
	if v.BlogList == nil {
		v.BlogList = d.BlogList
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.Page == nil {
		v.Page = d.Page
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central partsite application. It wires together the content
// repository, caches, handlers, middleware and templates.
type App struct {
	Config Config
	Echo   *echo.Echo
	Repo   *content.Repository
	Cache  *PostCache
	Views  ViewFuncs

	files         *content.Cache
	searchLimiter *SearchLimiter
	customRoutes  []func(*App)
	contentFS     fs.FS
	staticFS      fs.FS
	logger        content.Logger
	now           func() time.Time
}

// New creates an App ready to serve. Routes and middleware are registered
// immediately so a.Echo can be used as an http.Handler without Start.
func New(cfg Config, viewFuncs ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	viewFuncs.fillDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  viewFuncs,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		l := log.New("partsite")
		l.SetLevel(log.INFO)
		a.Echo.Logger = l
		a.logger = l
	}
	if a.contentFS == nil {
		a.contentFS = os.DirFS(cfg.ContentDir)
	}
	if a.staticFS == nil {
		a.staticFS = os.DirFS(cfg.StaticDir)
	}

	a.files = content.NewCache(cfg.PostCacheTTL)
	a.Repo = content.NewRepository(a.contentFS,
		content.WithLogger(a.logger),
		content.WithCache(a.files),
		content.WithExcerptLength(cfg.ExcerptLength),
	)
	a.Cache = NewPostCache(a.Repo, a.files, cfg.PostCacheTTL)
	a.searchLimiter = NewSearchLimiter(cfg.SearchLimit, cfg.SearchWindow)

	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully. With
// Config.Watch set, content changes invalidate the caches while serving.
func (a *App) Start(ctx context.Context) error {
	if a.Config.Watch {
		go func() {
			if err := content.Watch(ctx, a.Config.ContentDir, a.Cache, a.logger); err != nil {
				a.logger.Errorf("watch: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("partsite: shutdown: %w", err)
		}
		return nil
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/styles.css", a.handleAsset("styles.css"))
	e.StaticFS("/public", a.staticFS)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/rss.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/tag/:tag/", a.handleTag)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/:page/", a.handlePage)

	api := e.Group("/api")
	api.GET("/posts", a.handleAPIPosts, a.searchLimiter.Middleware())
	api.GET("/posts/:slug", a.handleAPIPost)
	api.GET("/posts/:slug/related", a.handleAPIRelated)
	api.GET("/tags", a.handleAPITags)
	api.GET("/config", a.handleAPIConfig)
}

// Close releases background resources. Call this when the app is shutting
// down.
func (a *App) Close() error {
	a.searchLimiter.Stop()
	return nil
}
