package partsite

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"
)

func encoded(t *testing.T, encode func(*bytes.Buffer, image.Image) error, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProbeImage(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: encoded(t, func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) }, 12, 7)},
		"b.bmp": {Data: encoded(t, func(b *bytes.Buffer, m image.Image) error { return bmp.Encode(b, m) }, 3, 5)},
		// The extension lies; the header wins.
		"c.jpg":   {Data: encoded(t, func(b *bytes.Buffer, m image.Image) error { return gif.Encode(b, m, nil) }, 4, 4)},
		"bad.png": {Data: []byte("not an image")},
	}

	tests := []struct {
		name          string
		typ           string
		width, height int
	}{
		{"a.png", "image/png", 12, 7},
		{"b.bmp", "image/bmp", 3, 5},
		{"c.jpg", "image/gif", 4, 4},
	}
	for _, tt := range tests {
		info, err := ProbeImage(fsys, tt.name)
		if err != nil {
			t.Errorf("ProbeImage(%q): %v", tt.name, err)
			continue
		}
		if info.Type != tt.typ || info.Width != tt.width || info.Height != tt.height {
			t.Errorf("ProbeImage(%q) = %+v, want %s %dx%d", tt.name, info, tt.typ, tt.width, tt.height)
		}
		if info.Length != int64(len(fsys[tt.name].Data)) {
			t.Errorf("ProbeImage(%q).Length = %d, want %d", tt.name, info.Length, len(fsys[tt.name].Data))
		}
	}

	if _, err := ProbeImage(fsys, "bad.png"); err == nil {
		t.Error("ProbeImage(bad.png) succeeded")
	}
	if _, err := ProbeImage(fsys, "missing.png"); err == nil {
		t.Error("ProbeImage(missing.png) succeeded")
	}
}

func TestThumbnail(t *testing.T) {
	a := newTestApp(t, Config{})
	tests := []struct {
		ref    string
		ok     bool
		url    string
		typ    string
		probed bool
	}{
		{"", false, "", "", false},
		{"/public/images/lathe.png", true, "https://example.com/public/images/lathe.png", "image/png", true},
		{"/images/lathe.png", true, "https://example.com/images/lathe.png", "image/png", true},
		{"/public/images/missing.webp", true, "https://example.com/public/images/missing.webp", "image/webp", false},
		{"https://cdn.example/x.gif", true, "https://cdn.example/x.gif", "image/gif", false},
		{"https://cdn.example/noext", true, "https://cdn.example/noext", "image/jpeg", false},
	}
	for _, tt := range tests {
		info, ok := a.thumbnail("https://example.com", tt.ref)
		if ok != tt.ok {
			t.Errorf("thumbnail(%q) ok = %v, want %v", tt.ref, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if info.URL != tt.url || info.Type != tt.typ {
			t.Errorf("thumbnail(%q) = %+v, want %s %s", tt.ref, info, tt.url, tt.typ)
		}
		if probed := info.Width > 0; probed != tt.probed {
			t.Errorf("thumbnail(%q) probed = %v, want %v", tt.ref, probed, tt.probed)
		}
	}
}
