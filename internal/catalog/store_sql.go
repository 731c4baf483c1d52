package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLStore keeps the catalog in the shows table (see internal/db), ordered
// by position so a reload reproduces table order.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// ReplaceAll swaps the stored catalog for shows in one transaction.
func (s *SQLStore) ReplaceAll(ctx context.Context, shows []Show) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shows`); err != nil {
		return fmt.Errorf("clear shows: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO shows (position,title,year,genres,description,imported_at)
		VALUES ($1,$2,$3,$4,$5,$6)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for i, sh := range shows {
		if _, err := stmt.ExecContext(ctx, i, sh.Title, sh.Year, sh.Genres, sh.Description, now); err != nil {
			return fmt.Errorf("insert show %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load reads the stored catalog. An empty table is returned as ErrEmptyCatalog.
func (s *SQLStore) Load(ctx context.Context) (*Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title,year,genres,description FROM shows ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shows []Show
	for rows.Next() {
		var sh Show
		if err := rows.Scan(&sh.Title, &sh.Year, &sh.Genres, &sh.Description); err != nil {
			return nil, err
		}
		shows = append(shows, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return nil, ErrEmptyCatalog
	}
	return NewTable(shows), nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&n)
	return n, err
}
