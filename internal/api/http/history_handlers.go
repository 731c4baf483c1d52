package http

import (
	"context"
	"net/http"

	"github.com/mind-engage/suggestify/internal/history"
	"github.com/mind-engage/suggestify/internal/logging"
)

// HistoryLister reads back recorded outcomes; *history.Repo satisfies it.
type HistoryLister interface {
	Recent(ctx context.Context, typ string, limit int) ([]history.Event, error)
}

// GET /admin/history?type=QuizScored&limit=50
func ListHistoryHandler(hl HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := r.URL.Query().Get("type")
		switch typ {
		case "", history.TypeQuizScored, history.TypeShowsRecommended:
		default:
			writeError(w, http.StatusBadRequest, "BAD_TYPE", "unknown event type "+typ)
			return
		}
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		events, err := hl.Recent(r.Context(), typ, limit)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("history query failed")
			writeError(w, http.StatusInternalServerError, "STORE_ERROR", "history query")
			return
		}
		if events == nil {
			events = []history.Event{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": events})
	}
}
