package partsite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Machine-readable files written by Export. feed.xml and rss.xml carry the
// same feed.
var exportFiles = []string{"feed.xml", "rss.xml", "sitemap.xml", "search-index.json", "tags.json"}

// Export writes the feeds, sitemap, search index and tag counts into dir,
// creating it if needed. It returns the paths written, in order.
func (a *App) Export(ctx context.Context, dir string) ([]string, error) {
	posts, err := a.Repo.GetAllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("partsite: export: %w", err)
	}
	site := a.siteConfig(ctx)

	feed, err := a.BuildRSS(site, posts)
	if err != nil {
		return nil, fmt.Errorf("partsite: export rss: %w", err)
	}
	sitemap, err := BuildSitemap(site.URL, posts)
	if err != nil {
		return nil, fmt.Errorf("partsite: export sitemap: %w", err)
	}
	index, err := json.MarshalIndent(Summarize(posts), "", "  ")
	if err != nil {
		return nil, err
	}
	counts, err := a.Repo.GetTagCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("partsite: export tags: %w", err)
	}
	tags, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return nil, err
	}
	data := map[string][]byte{
		"feed.xml":          feed,
		"rss.xml":           feed,
		"sitemap.xml":       sitemap,
		"search-index.json": index,
		"tags.json":         tags,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	written := make([]string, 0, len(exportFiles))
	for _, name := range exportFiles {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data[name], 0o644); err != nil {
			return written, fmt.Errorf("partsite: export: %w", err)
		}
		a.logger.Infof("wrote %s", p)
		written = append(written, p)
	}
	return written, nil
}
