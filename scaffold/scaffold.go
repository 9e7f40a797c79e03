// Package scaffold provides the sample site written by "partsite new": a
// partsite.yaml, a content tree with config, pages and a first post, and a
// stylesheet.
package scaffold

import "embed"

// Templates contains all scaffold template files under templates/.
// Files use Go text/template syntax and have a .tmpl suffix; __DATE__ in a
// path is replaced with the creation date.
//
//go:embed all:templates
var Templates embed.FS
