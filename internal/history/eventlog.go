package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	TypeQuizScored       = "QuizScored"
	TypeShowsRecommended = "ShowsRecommended"
)

type Event struct {
	Offset    int64           `json:"offset"`
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"created_at"`
}

// Repo is an append-only log of quiz and recommendation outcomes kept in
// event_log.
type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, typ string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	e := Event{ID: uuid.NewString(), Type: typ, Data: data, CreatedAt: time.Now().Unix()}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (id, typ, data, created_at) VALUES ($1,$2,$3,$4)`,
		e.ID, e.Type, string(data), e.CreatedAt)
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

// Recent returns up to limit events, newest first. typ filters when non-empty.
func (r *Repo) Recent(ctx context.Context, typ string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q := `SELECT "offset", id, typ, data, created_at FROM event_log`
	args := []any{}
	if typ != "" {
		q += ` WHERE typ=$1 ORDER BY "offset" DESC LIMIT $2`
		args = append(args, typ, limit)
	} else {
		q += ` ORDER BY "offset" DESC LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		var data string
		if err := rows.Scan(&e.Offset, &e.ID, &e.Type, &data, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Data = json.RawMessage(data)
		out = append(out, e)
	}
	return out, rows.Err()
}
