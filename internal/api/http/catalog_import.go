package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/logging"
	"github.com/mind-engage/suggestify/internal/metrics"
	"github.com/mind-engage/suggestify/internal/storage"
)

const maxCatalogUpload = 32 << 20

// CatalogStore persists an imported catalog; *catalog.SQLStore satisfies it.
type CatalogStore interface {
	ReplaceAll(ctx context.Context, shows []catalog.Show) error
}

// POST /admin/catalog/import
// Accepts multipart file=<csv> or a raw CSV body. The new table is persisted,
// the raw bytes are archived, then the table is swapped in.
func ImportCatalogHandler(h *catalog.Holder, store CatalogStore, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := readUpload(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_UPLOAD", err.Error())
			return
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			writeError(w, http.StatusBadRequest, "EMPTY_CATALOG", "empty csv")
			return
		}
		shows, err := catalog.ReadCSV(bytes.NewReader(raw))
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_CSV", err.Error())
			return
		}
		if len(shows) == 0 {
			writeError(w, http.StatusBadRequest, "EMPTY_CATALOG", catalog.ErrEmptyCatalog.Error())
			return
		}

		log := logging.Ctx(r.Context())
		if store != nil {
			if err := store.ReplaceAll(r.Context(), shows); err != nil {
				log.Error().Err(err).Msg("catalog persist failed")
				writeError(w, http.StatusInternalServerError, "STORE_ERROR", "persist catalog")
				return
			}
		}

		snapshot := ""
		if bs != nil {
			key, err := bs.Put("catalog/"+uuid.NewString()+".csv", bytes.NewReader(raw))
			if err != nil {
				// the catalog itself is already stored; a missing archive is not fatal
				log.Warn().Err(err).Msg("catalog snapshot not archived")
			} else {
				snapshot = key
			}
		}

		t := catalog.NewTable(shows)
		h.Swap(t)
		metrics.CatalogShows.Set(float64(t.Len()))
		log.Info().Int("shows", t.Len()).Str("snapshot", snapshot).Msg("catalog imported")

		writeJSON(w, http.StatusOK, map[string]any{
			"imported": t.Len(),
			"snapshot": snapshot,
		})
	}
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCatalogUpload)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, errors.New("file required")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(r.Body)
}
