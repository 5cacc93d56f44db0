// Package ui holds the HTML templates and static assets, embedded into the
// binary so the application ships as a single file alongside its database.
package ui

import (
	"embed"
	"io/fs"
)

//go:embed "html" "static"
var Files embed.FS

// Static returns the static asset tree rooted at its own directory so it can
// be mounted directly on a file server.
func Static() fs.FS {
	static, err := fs.Sub(Files, "static")
	if err != nil {
		// The tree is embedded at compile time; Sub cannot fail at runtime.
		panic(err)
	}
	return static
}
