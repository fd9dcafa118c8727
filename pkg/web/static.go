package web

import (
	"io/fs"
	"net/http"
)

// Static returns a handler that serves files from subdir of fsys under the
// URL prefix. Requests outside the subtree get 404.
func Static(fsys fs.FS, subdir, prefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return http.NotFound
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub))).ServeHTTP
}
