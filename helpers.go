package partsite

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/takeparts/partsite/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsoluteURL resolves a site-relative reference such as a thumbnail path
// against base. Absolute URLs are returned unchanged.
func AbsoluteURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// siteConfig returns the content site config with Config.BaseURL applied.
func (a *App) siteConfig(ctx context.Context) content.SiteConfig {
	cfg := a.Repo.GetSiteConfig(ctx)
	if a.Config.BaseURL != "" {
		cfg.URL = strings.TrimSuffix(a.Config.BaseURL, "/")
	}
	return cfg
}

func robotsTxt(base string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + strings.TrimSuffix(base, "/") + "/sitemap.xml\n")
	return b.String()
}
