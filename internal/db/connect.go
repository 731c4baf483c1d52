package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type driverSpec struct {
	sqlName    string // database/sql registration name
	defaultDSN string
	configure  func(*sql.DB)
}

var drivers = map[Driver]driverSpec{
	DriverSQLite: {
		sqlName:    "sqlite", // modernc
		defaultDSN: "file:suggestify.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)",
		// single connection: one writer, and :memory: lives on one connection
		configure: func(db *sql.DB) { db.SetMaxOpenConns(1) },
	},
	DriverPostgres: {
		sqlName:    "pgx",
		defaultDSN: "postgres://localhost:5432/suggestify?sslmode=disable",
		configure: func(db *sql.DB) {
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(5)
			db.SetConnMaxIdleTime(5 * time.Minute)
		},
	},
}

// Open connects, pings and creates the shows and event_log tables if needed.
// An empty dsn uses the driver's local default.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	spec, ok := drivers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	if dsn == "" {
		dsn = spec.defaultDSN
	}
	db, err := sql.Open(spec.sqlName, dsn)
	if err != nil {
		return nil, err
	}
	spec.configure(db)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err := ensureSchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	schema := schemaSQLite
	if driver == DriverPostgres {
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS shows (
  position INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  year INTEGER NOT NULL DEFAULT 0,
  genres TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  imported_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL,
  typ TEXT NOT NULL,       -- QuizScored | ShowsRecommended
  data TEXT NOT NULL,      -- JSON payload
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS shows (
  position INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  year INTEGER NOT NULL DEFAULT 0,
  genres TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  imported_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  id TEXT NOT NULL,
  typ TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
