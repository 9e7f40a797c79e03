package content

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// HomePage is the slug of the page served at "/".
const HomePage = "home"

// siteConfigFiles are tried in order. JSON is read by the YAML decoder.
var siteConfigFiles = []string{"config.json", "config.yaml", "config.yml"}

// GetPageContent loads pages/<slug>.mdx (or .md). An empty slug means the
// home page. The boolean is false when the page is absent, unpublished or
// invalid; malformed metadata is returned as a *ParseError.
func (r *Repository) GetPageContent(ctx context.Context, slug string) (Page, bool, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, false, err
	}
	if slug == "" {
		slug = HomePage
	}
	if !validSlug(slug) {
		return Page{}, false, nil
	}
	for _, ext := range contentExts {
		p := path.Join(PagesDir, slug+ext)
		rec, err := r.readRecord(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Page{}, false, err
		}
		if !rec.Meta.IsPublished() {
			return Page{}, false, nil
		}
		if err := rec.ValidatePage(); err != nil {
			r.logger.Warnf("page %s excluded: %v", p, err)
			return Page{}, false, nil
		}
		date := ""
		if rec.Meta.Date != nil {
			t, _ := ParseDate(rec.Meta.Date)
			date = dateString(rec.Meta.Date, t)
		}
		return Page{
			Slug: slug,
			Frontmatter: PageFrontmatter{
				Title:       strings.TrimSpace(rec.Meta.Title),
				Description: strings.TrimSpace(rec.Meta.Description),
				Date:        date,
				Excerpt:     strings.TrimSpace(rec.Meta.Excerpt),
				Published:   true,
			},
			Content: rec.Body,
		}, true, nil
	}
	r.logger.Debugf("page not found: %s", slug)
	return Page{}, false, nil
}

// GetSiteConfig reads the site configuration. It never fails: a missing or
// corrupt file yields DefaultSiteConfig, and empty identity fields are
// filled from the defaults.
func (r *Repository) GetSiteConfig(ctx context.Context) SiteConfig {
	if ctx.Err() != nil {
		return DefaultSiteConfig()
	}
	for _, name := range siteConfigFiles {
		src, err := fs.ReadFile(r.fsys, name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Errorf("read %s: %v; using defaults", name, err)
				return DefaultSiteConfig()
			}
			continue
		}
		var cfg SiteConfig
		if err := yaml.Unmarshal(src, &cfg); err != nil {
			r.logger.Errorf("decode %s: %v; using defaults", name, err)
			return DefaultSiteConfig()
		}
		cfg.setDefaults()
		return cfg
	}
	r.logger.Warnf("site config not found; using defaults")
	return DefaultSiteConfig()
}
