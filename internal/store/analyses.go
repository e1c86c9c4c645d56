package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Analysis statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Analysis records one relay call. The submitted text itself is not kept.
type Analysis struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	InputChars  int       `json:"input_chars"`
	OutputChars int       `json:"output_chars"`
	Status      string    `json:"status"`
	DurationMS  int64     `json:"duration_ms"`
	Fallback    bool      `json:"fallback"`
}

// RecordAnalysis stores a, assigning an ID and timestamp when missing.
func (d *DB) RecordAnalysis(ctx context.Context, a Analysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Status == "" {
		a.Status = StatusOK
	}
	_, err := d.ExecContext(ctx, `
		INSERT INTO analyses (id, created_at, input_chars, output_chars, status, duration_ms, fallback)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, formatTime(a.CreatedAt), a.InputChars, a.OutputChars, a.Status, a.DurationMS, a.Fallback)
	if err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	return nil
}

// RecentAnalyses returns up to limit analyses, newest first.
func (d *DB) RecentAnalyses(ctx context.Context, limit int) ([]Analysis, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT id, created_at, input_chars, output_chars, status, duration_ms, fallback
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		var ts string
		if err := rows.Scan(&a.ID, &ts, &a.InputChars, &a.OutputChars, &a.Status, &a.DurationMS, &a.Fallback); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		a.CreatedAt = parseTime(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats summarizes visitors and analyses for the admin dashboard.
type Stats struct {
	TotalVisitors    int64     `json:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week"`
	TotalAnalyses    int64     `json:"total_analyses"`
	FailedAnalyses   int64     `json:"failed_analyses"`
	FallbackAnalyses int64     `json:"fallback_analyses"`
	AvgDurationMS    float64   `json:"avg_duration_ms"`
	RecentVisitors   []Visitor `json:"recent_visitors"`
}

// Stats computes the dashboard numbers as of now.
func (d *DB) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	s := &Stats{}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   any
		query string
		args  []any
	}{
		{&s.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&s.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&s.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(today)}},
		{&s.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(now.AddDate(0, 0, -7))}},
		{&s.TotalAnalyses, `SELECT COUNT(*) FROM analyses`, nil},
		{&s.FailedAnalyses, `SELECT COUNT(*) FROM analyses WHERE status = 'error'`, nil},
		{&s.FallbackAnalyses, `SELECT COUNT(*) FROM analyses WHERE fallback = 1`, nil},
		{&s.AvgDurationMS, `SELECT COALESCE(AVG(duration_ms), 0) FROM analyses`, nil},
	}
	for _, c := range counts {
		if err := d.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("computing stats: %w", err)
		}
	}

	recent, err := d.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	s.RecentVisitors = recent
	return s, nil
}
