package partsite

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"mime"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes a post thumbnail for feed enclosures and social
// metadata.
type ImageInfo struct {
	URL    string
	Type   string // MIME type
	Length int64  // bytes; zero when unknown
	Width  int
	Height int
}

// ProbeImage reads the header of the image at name in fsys. Size and format
// come from the file itself, not its extension.
func ProbeImage(fsys fs.FS, name string) (ImageInfo, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return ImageInfo{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return ImageInfo{}, err
	}
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("probe %s: %w", name, err)
	}
	return ImageInfo{
		Type:   "image/" + format,
		Length: st.Size(),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// thumbnail resolves a post's thumbnail. Site-relative paths are probed in
// the static directory, with /public/ and the bare path both accepted; remote
// or unreadable images fall back to a MIME type guessed from the extension.
func (a *App) thumbnail(base, ref string) (ImageInfo, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ImageInfo{}, false
	}
	info := ImageInfo{URL: AbsoluteURL(base, ref)}

	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		name := strings.TrimPrefix(path.Clean(ref), "/")
		name = strings.TrimPrefix(name, "public/")
		probed, err := ProbeImage(a.staticFS, name)
		if err == nil {
			probed.URL = info.URL
			return probed, true
		}
		a.logger.Debugf("thumbnail %s: %v", ref, err)
	}

	info.Type = mime.TypeByExtension(strings.ToLower(path.Ext(ref)))
	if info.Type == "" {
		info.Type = "image/jpeg"
	}
	return info, true
}
