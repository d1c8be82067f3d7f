// Package views embeds the HTML templates and static assets.
package views

import (
	"embed"
	"io/fs"
)

//go:embed layout.html pages/*.html posts/*.html contact/*.html partials/*.html
var FS embed.FS

//go:embed static
var static embed.FS

// Static returns the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
