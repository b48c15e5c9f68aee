package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/skillbridge/internal/session"
)

// AttemptRepo provides append-only access to recorded attempts.
type AttemptRepo interface {
	// Append records an attempt as the next entry of its session.
	Append(ctx context.Context, a session.Attempt) error

	// BySession returns a session's attempts in recording order.
	BySession(ctx context.Context, sessionID string) ([]session.Attempt, error)

	// Recent returns the most recent attempts across all sessions,
	// oldest first. A limit of 0 returns everything.
	Recent(ctx context.Context, limit int) ([]session.Attempt, error)

	// SessionIDs returns distinct session ids, most recent first.
	SessionIDs(ctx context.Context) ([]string, error)
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, a session.Attempt) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attempts (session_id, seq, timestamp, payload)
		VALUES (
			?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM attempts WHERE session_id = ?),
			?,
			?
		)`,
		a.SessionID, a.SessionID, a.Timestamp.UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) BySession(ctx context.Context, sessionID string) ([]session.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payload FROM attempts
		WHERE session_id = ?
		ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]session.Attempt, error) {
	query := `SELECT payload FROM attempts ORDER BY id`
	args := []any{}
	if limit > 0 {
		query = `SELECT payload FROM (
			SELECT id, payload FROM attempts ORDER BY id DESC LIMIT ?
		) ORDER BY id`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

func (r *attemptRepo) SessionIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id FROM attempts
		GROUP BY session_id
		ORDER BY MAX(id) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query session ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanAttempts(rows *sql.Rows) ([]session.Attempt, error) {
	var out []session.Attempt
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		var a session.Attempt
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return nil, fmt.Errorf("unmarshal attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
