package api

import (
	_ "embed"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

//go:embed static/index.html
var defaultIndex []byte

// StaticFiles serves files from dir. When dir has no index.html the root
// path falls back to a built-in landing page.
func StaticFiles(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if _, err := w.Write(defaultIndex); err != nil {
					log.Debug().Err(err).Msg("Failed to write default landing page")
				}
				return
			}
		}
		files.ServeHTTP(w, r)
	}
}
