// Package web provides the embedded server-rendered pages for Userboard.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded static assets with "static" as the root,
// so files are accessed directly (e.g., "style.css").
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
