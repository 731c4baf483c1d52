package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auth "github.com/mind-engage/suggestify/internal/auth/middleware"
	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/metrics"
	"github.com/mind-engage/suggestify/internal/quiz"
	"github.com/mind-engage/suggestify/internal/rbac"
	"github.com/mind-engage/suggestify/internal/storage"
)

// Deps is everything the router mounts. Auth nil disables /auth and /admin;
// Store, Blobs and History may be nil.
type Deps struct {
	Battery quiz.Battery
	Catalog *catalog.Holder
	Filter  catalog.Filter

	Store   CatalogStore
	Blobs   storage.BlobStore
	History interface {
		Recorder
		HistoryLister
	}

	Auth  *auth.AuthService
	Admin auth.Admin

	CORSOrigins        []string
	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	var rec Recorder
	if d.History != nil {
		rec = d.History
	}

	r := chi.NewRouter()
	r.Use(EnsureRequestID, middleware.RequestID, middleware.RealIP, RequestLogger, middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed")
	})

	r.Route("/api", func(ar chi.Router) {
		if d.RateLimitPerMinute > 0 {
			ar.Use(httprate.LimitByIP(d.RateLimitPerMinute, time.Minute))
		}
		ar.Get("/quiz/questions", QuizQuestionsHandler(d.Battery))
		score := QuizScoreHandler(d.Battery, rec)
		ar.Post("/quiz/score", score)
		ar.Post("/quiz/result", score) // path used by the web front end
		ar.Post("/quiz/recommend", QuizRecommendHandler(d.Battery, d.Catalog, d.Filter, rec))
		ar.Post("/recommend", RecommendHandler(d.Catalog, d.Filter, rec))
		ar.Get("/shows", ListShowsHandler(d.Catalog))
	})

	if d.Auth != nil {
		r.Post("/auth/login", auth.LoginHandler(d.Auth, d.Admin))

		// JWT → role in context → RBAC
		r.Route("/admin", func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(d.Auth))
			pr.With(rbac.Require("catalog:import")).
				Post("/catalog/import", ImportCatalogHandler(d.Catalog, d.Store, d.Blobs))
			if d.Blobs != nil {
				pr.Group(func(g chi.Router) {
					g.Use(rbac.Require("catalog:view"))
					g.Route("/catalog/snapshots", func(sr chi.Router) { MountSnapshots(sr, d.Blobs) })
				})
			}
			if d.History != nil {
				pr.With(rbac.Require("history:view")).
					Get("/history", ListHistoryHandler(d.History))
			}
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !d.Catalog.Loaded() {
			writeError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "catalog not loaded")
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
