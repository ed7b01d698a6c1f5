// Package static embeds the built attendee frontend.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:dist/*
var assets embed.FS

// FileSystem returns the embedded frontend rooted at dist/.
func FileSystem() http.FileSystem {
	sub, err := fs.Sub(assets, "dist")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Available reports whether a built frontend is embedded.
func Available() bool {
	entries, err := assets.ReadDir("dist")
	if err != nil {
		return false
	}
	return len(entries) > 0
}
