// Package app assembles the pieces both binaries need from a Config.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/config"
	"github.com/mind-engage/suggestify/internal/logging"
	"github.com/mind-engage/suggestify/internal/quiz"
)

// Battery returns the configured quiz battery, or the built-in one.
func Battery(cfg config.Config) (quiz.Battery, error) {
	if cfg.QuizBatteryPath == "" {
		return quiz.DefaultBattery(), nil
	}
	b, err := quiz.LoadBattery(cfg.QuizBatteryPath)
	if err != nil {
		return quiz.Battery{}, fmt.Errorf("battery %s: %w", cfg.QuizBatteryPath, err)
	}
	return b, nil
}

func Filter(cfg config.Config) (catalog.Filter, error) {
	m, err := catalog.MatcherByName(cfg.CatalogMatcher)
	if err != nil {
		return catalog.Filter{}, err
	}
	return catalog.Filter{Matcher: m, Limit: cfg.RecommendLimit}, nil
}

// ShowStore is the part of catalog.SQLStore bootstrap uses.
type ShowStore interface {
	ReplaceAll(ctx context.Context, shows []catalog.Show) error
	Load(ctx context.Context) (*catalog.Table, error)
}

// Catalog loads the show table. A configured CSV wins and, when store is
// set, is written through so later starts can run without it. Otherwise
// the store is read; an empty store yields a nil table and no error so the
// service can start and wait for an import.
func Catalog(ctx context.Context, cfg config.Config, store ShowStore) (*catalog.Table, error) {
	if cfg.CatalogCSV != "" {
		t, err := catalog.LoadCSVFile(cfg.CatalogCSV)
		if err != nil {
			return nil, err
		}
		if store != nil {
			if err := store.ReplaceAll(ctx, t.Shows()); err != nil {
				return nil, fmt.Errorf("seed catalog: %w", err)
			}
		}
		logging.Info().Str("csv", cfg.CatalogCSV).Int("shows", t.Len()).Msg("catalog loaded from csv")
		return t, nil
	}
	if store == nil {
		return nil, nil
	}
	t, err := store.Load(ctx)
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		logging.Warn().Msg("catalog is empty; waiting for an import")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logging.Info().Int("shows", t.Len()).Msg("catalog loaded from database")
	return t, nil
}
