package partsite

import (
	"embed"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the default stylesheet shipped with partsite. A
// file of the same name in the static directory takes precedence.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// handleAsset serves /public/<name> from the static directory, falling back
// to the embedded copy.
func (a *App) handleAsset(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := fs.ReadFile(a.staticFS, name)
		if errors.Is(err, fs.ErrNotExist) {
			b, err = EmbeddedAssets.ReadFile("embedded/" + name)
		}
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, mime.TypeByExtension(path.Ext(name)), b)
	}
}
