package partsite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/takeparts/partsite/content"
)

func TestExport(t *testing.T) {
	a := newTestApp(t, Config{})
	dir := filepath.Join(t.TempDir(), "dist")

	written, err := a.Export(context.Background(), dir)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(written) != len(exportFiles) {
		t.Fatalf("wrote %d files, want %d", len(written), len(exportFiles))
	}

	feed, err := os.ReadFile(filepath.Join(dir, "feed.xml"))
	if err != nil {
		t.Fatal(err)
	}
	rss, err := os.ReadFile(filepath.Join(dir, "rss.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(feed) != string(rss) {
		t.Error("feed.xml and rss.xml differ")
	}
	sitemap, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sitemap), "<loc>https://example.com/blog/lathe/</loc>") {
		t.Error("sitemap missing post URL")
	}

	var index []PostSummary
	readJSON(t, filepath.Join(dir, "search-index.json"), &index)
	if len(index) != 3 || index[0].Slug != "cnc" {
		t.Errorf("search index = %+v", index)
	}

	var tags []content.TagCount
	readJSON(t, filepath.Join(dir, "tags.json"), &tags)
	if len(tags) != 3 {
		t.Errorf("tags = %+v, want 3 entries", tags)
	}
}

func TestExportEmptySite(t *testing.T) {
	a := New(Config{}, ViewFuncs{},
		WithContentFS(fstest.MapFS{"posts/.keep": {}}),
		WithStaticFS(fstest.MapFS{}),
		WithLogger(quietLogger()))
	defer a.Close()
	dir := t.TempDir()

	if _, err := a.Export(context.Background(), dir); err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "tags.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(b)); got != "[]" {
		t.Errorf("tags.json = %q, want %q", got, "[]")
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}
