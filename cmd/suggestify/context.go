package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mind-engage/suggestify/internal/app"
	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/config"
	"github.com/mind-engage/suggestify/internal/db"
	"github.com/mind-engage/suggestify/internal/logging"
)

type commandContext struct {
	configFlag *string
	csvFlag    *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	dbh *sql.DB
}

func newCommandContext(configFlag, csvFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, csvFlag: csvFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if v := strings.TrimSpace(*c.csvFlag); v != "" {
			cfg.CatalogCSV = v
		}
		// keep the console clean: only warnings and up, human readable
		logging.Init(logging.Config{Level: "warn", Format: "console", Output: os.Stderr})
		if strings.EqualFold(cfg.LogLevel, "debug") {
			logging.Init(logging.Config{Level: "debug", Format: "console", Output: os.Stderr})
		}
		c.config = &cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openDB(ctx context.Context) (*sql.DB, error) {
	if c.dbh != nil {
		return c.dbh, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	c.dbh = dbh
	return dbh, nil
}

func (c *commandContext) store(ctx context.Context) (*catalog.SQLStore, error) {
	dbh, err := c.openDB(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewSQLStore(dbh), nil
}

// catalog resolves the show table from --csv/catalog_csv or the database.
// A CSV given on the console is read only; use import to persist it. A
// console run without any catalog is an error.
func (c *commandContext) catalog(ctx context.Context) (*catalog.Table, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var store app.ShowStore
	if cfg.CatalogCSV == "" {
		s, err := c.store(ctx)
		if err != nil {
			return nil, err
		}
		store = s
	}
	t, err := app.Catalog(ctx, *cfg, store)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.New("no show catalog: pass --csv or run `suggestify import --csv <file>` first")
	}
	return t, nil
}

func (c *commandContext) close() error {
	if c.dbh == nil {
		return nil
	}
	err := c.dbh.Close()
	c.dbh = nil
	return err
}
