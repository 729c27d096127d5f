package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the dashboard build artifacts
//
//go:embed all:dist
var FS embed.FS

// GetHTTPFS returns the embedded dashboard for HTTP serving. It fails when the
// dashboard has not been built into dist.
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "dist")
	if err != nil {
		return nil, err
	}

	if _, err := fs.Stat(sub, "index.html"); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: "index.html", Err: fs.ErrNotExist}
	}

	return http.FS(sub), nil
}
