package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/suggestify/internal/storage"
)

// MountSnapshots serves archived catalog uploads:
// GET /{key...} where key is what the import response reported.
func MountSnapshots(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if !strings.HasPrefix(key, "catalog/") {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "unknown snapshot")
			return
		}
		rc, err := bs.Get(key)
		if err != nil {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "unknown snapshot")
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = io.Copy(w, rc)
	})
}
