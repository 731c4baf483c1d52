package http

import (
	"net/http"
	"strings"

	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/history"
	"github.com/mind-engage/suggestify/internal/metrics"
)

type recommendRequest struct {
	Genres GenreList `json:"genres" validate:"max=20,dive,max=200"`
	Limit  int       `json:"limit" validate:"gte=0,lte=50"`
}

type recommendResponse struct {
	Genres          []string       `json:"genres"`
	Recommendations []catalog.Show `json:"recommendations"`
	Error           string         `json:"error,omitempty"`
}

// POST /api/recommend {"genres": ["crime","drama"] | "crime, drama", "limit": 5}
// No match is not a failure: 200 with an empty list and a message.
func RecommendHandler(h *catalog.Holder, f catalog.Filter, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recommendRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		t := h.Table()
		if t == nil {
			writeError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "catalog not loaded")
			return
		}
		genres := catalog.NormalizeGenres(req.Genres...)
		out := recommendResponse{Genres: genres, Recommendations: f.Recommend(t, genres, req.Limit)}
		metrics.RecordRecommendation(len(out.Recommendations))

		switch {
		case len(genres) == 0:
			out.Error = "No genres requested."
		case len(out.Recommendations) == 0:
			out.Error = noShowsMessage(genres)
		default:
			record(r.Context(), rec, history.TypeShowsRecommended, map[string]any{
				"source": "manual",
				"genres": genres,
				"titles": showTitles(out.Recommendations),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /api/shows?q=&limit=&offset=
func ListShowsHandler(h *catalog.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		if limit == 0 || limit > 200 {
			limit = 50
		}
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		page, total := h.Table().Search(q, limit, offset)
		writeJSON(w, http.StatusOK, map[string]any{
			"total":  total,
			"limit":  limit,
			"offset": offset,
			"shows":  page,
		})
	}
}
