package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	api "github.com/mind-engage/suggestify/internal/api/http"
	"github.com/mind-engage/suggestify/internal/app"
	auth "github.com/mind-engage/suggestify/internal/auth/middleware"
	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/config"
	"github.com/mind-engage/suggestify/internal/db"
	"github.com/mind-engage/suggestify/internal/history"
	"github.com/mind-engage/suggestify/internal/logging"
	"github.com/mind-engage/suggestify/internal/metrics"
	"github.com/mind-engage/suggestify/internal/storage"
)

// serve wires the service from cfg and blocks until ctx is done.
func serve(ctx context.Context, cfg config.Config) error {
	// --- DB ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		return fmt.Errorf("db open (%s): %w", cfg.DBDriver, err)
	}
	defer dbh.Close()
	store := catalog.NewSQLStore(dbh)

	// --- Quiz + catalog ---
	battery, err := app.Battery(cfg)
	if err != nil {
		return err
	}
	filter, err := app.Filter(cfg)
	if err != nil {
		return err
	}
	tbl, err := app.Catalog(ctx, cfg, store)
	if err != nil {
		return err
	}
	holder := catalog.NewHolder(tbl)
	metrics.CatalogShows.Set(float64(tbl.Len()))

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}

	deps := api.Deps{
		Battery:            battery,
		Catalog:            holder,
		Filter:             filter,
		Store:              store,
		Blobs:              bs,
		History:            history.NewRepo(dbh),
		CORSOrigins:        cfg.CORSOrigins(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}
	// Local admin login (import, history). Disabled surfaces are not mounted.
	if cfg.EnableAdmin {
		deps.Auth = auth.NewAuthService(cfg.AuthHMACSecret)
		deps.Admin = auth.Admin{User: cfg.AdminUser, PassHash: cfg.AdminPassHash, Role: cfg.AdminRole}
		if cfg.AdminPassHash == "" {
			logging.Warn().Msg("admin_pass_hash not set; /auth/login will refuse logins")
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("shutdown")
		}
	}()

	logging.Info().
		Str("addr", cfg.HTTPAddr).
		Str("mode", string(cfg.Mode)).
		Str("db", cfg.DBDriver).
		Int("shows", tbl.Len()).
		Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logging.Info().Msg("stopped")
	return nil
}
