package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mind-engage/suggestify/internal/logging"
)

// RequestLogger replaces chi's middleware.Logger with one zerolog line per
// request. It must run after middleware.RequestID so the id is carried into
// logging.Ctx for handlers.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
			r = r.WithContext(ctx)
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ev := logging.Ctx(ctx).Info()
		if status >= 500 {
			ev = logging.Ctx(ctx).Error()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("http request")
	})
}

// EnsureRequestID gives requests without an X-Request-Id header a uuid so
// middleware.RequestID picks it up instead of its host-counter format.
func EnsureRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.RequestIDHeader) == "" {
			r.Header.Set(middleware.RequestIDHeader, uuid.NewString())
		}
		w.Header().Set(middleware.RequestIDHeader, r.Header.Get(middleware.RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}
