package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/history"
	"github.com/mind-engage/suggestify/internal/logging"
	"github.com/mind-engage/suggestify/internal/metrics"
	"github.com/mind-engage/suggestify/internal/quiz"
)

// Recorder appends outcome events; *history.Repo satisfies it.
type Recorder interface {
	Append(ctx context.Context, typ string, payload any) (history.Event, error)
}

func record(ctx context.Context, rec Recorder, typ string, payload any) {
	if rec == nil {
		return
	}
	if _, err := rec.Append(ctx, typ, payload); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("type", typ).Msg("history append failed")
	}
}

// GET /api/quiz/questions
func QuizQuestionsHandler(b quiz.Battery) http.HandlerFunc {
	body := quiz.File{Questions: b.Questions()}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

type scoreRequest struct {
	Answers []string `json:"answers" validate:"max=100,dive,max=8"`
}

// scoreQuiz runs the scorer and does the bookkeeping every caller needs.
func scoreQuiz(ctx context.Context, b quiz.Battery, answers []string) quiz.Result {
	res := quiz.Score(b, answers)
	for _, s := range res.Skipped {
		metrics.QuizSkippedAnswers.WithLabelValues(string(s.Reason)).Inc()
		logging.Ctx(ctx).Debug().
			Int("position", s.Position).
			Str("key", s.Key).
			Str("reason", string(s.Reason)).
			Msg("quiz answer skipped")
	}
	if res.HasSignal() {
		metrics.QuizScored.WithLabelValues("true").Inc()
	} else {
		metrics.QuizScored.WithLabelValues("false").Inc()
	}
	return res
}

// POST /api/quiz/score {"answers":["A","C",...]}
func QuizScoreHandler(b quiz.Battery, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		res := scoreQuiz(r.Context(), b, req.Answers)
		record(r.Context(), rec, history.TypeQuizScored, map[string]any{
			"answers": req.Answers,
			"genres":  res.Genres,
		})
		writeJSON(w, http.StatusOK, res)
	}
}

type quizRecommendRequest struct {
	Answers []string `json:"answers" validate:"max=100,dive,max=8"`
	Limit   int      `json:"limit" validate:"gte=0,lte=50"`
}

type quizRecommendResponse struct {
	Genres          []string          `json:"genres"`
	Tally           []quiz.GenreCount `json:"tally"`
	Recommendations []catalog.Show    `json:"recommendations"`
	Error           string            `json:"error,omitempty"`
}

// POST /api/quiz/recommend {"answers":[...],"limit":5}
// Scores the quiz and feeds the winning genres into the genre filter.
func QuizRecommendHandler(b quiz.Battery, h *catalog.Holder, f catalog.Filter, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quizRecommendRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		t := h.Table()
		if t == nil {
			writeError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "catalog not loaded")
			return
		}
		res := scoreQuiz(r.Context(), b, req.Answers)
		out := quizRecommendResponse{Genres: res.Genres, Tally: res.Tally, Recommendations: []catalog.Show{}}

		genres, err := res.Top()
		if err != nil {
			out.Error = "No genre preference found in your answers."
			writeJSON(w, http.StatusOK, out)
			return
		}
		out.Recommendations = f.Recommend(t, genres, req.Limit)
		metrics.RecordRecommendation(len(out.Recommendations))
		if len(out.Recommendations) == 0 {
			out.Error = noShowsMessage(genres)
		}
		record(r.Context(), rec, history.TypeShowsRecommended, map[string]any{
			"source": "quiz",
			"genres": genres,
			"titles": showTitles(out.Recommendations),
		})
		writeJSON(w, http.StatusOK, out)
	}
}

func noShowsMessage(genres []string) string {
	return "No shows found matching genres: " + strings.Join(genres, ", ")
}

func showTitles(shows []catalog.Show) []string {
	out := make([]string, len(shows))
	for i, s := range shows {
		out[i] = s.Title
	}
	return out
}
