package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token counts for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns the most recent events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)

	// GetLLMRequest returns one event by id, nil when absent.
	GetLLMRequest(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// UsageByPurpose aggregates token usage grouped by request purpose.
	UsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests (
			timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms,
		       success, error_message, request_body, response_body
		FROM llm_requests
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query llm request events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		var ts string
		if err := rows.Scan(
			&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs,
			&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan llm request event: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms,
		       success, error_message, request_body, response_body
		FROM llm_requests
		WHERE id = ?`,
		id,
	)

	var e LLMRequestEvent
	var ts string
	err := row.Scan(
		&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm request event: %w", err)
	}
	e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	return &e, nil
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0),
		       COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_requests
		GROUP BY purpose
		ORDER BY purpose`,
	)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
