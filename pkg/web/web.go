// Package web holds the embedded landing page and its static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed index.html
var Index []byte

//go:embed static
var assets embed.FS

// Static serves the files under static/ with the prefix stripped.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
