package db

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scoreworker/internal/events"
)

// TelemetryReader provides read-only access to ingested match telemetry.
type TelemetryReader struct {
	pool *pgxpool.Pool
}

// NewTelemetryReader creates a new telemetry reader.
func NewTelemetryReader(pool *pgxpool.Pool) *TelemetryReader {
	return &TelemetryReader{pool: pool}
}

// MatchExists checks if a match exists in the database.
func (r *TelemetryReader) MatchExists(ctx context.Context, matchID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)
	`, matchID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// OpenEvents starts streaming the telemetry records of a match in feed order.
// The caller must Close the returned cursor.
func (r *TelemetryReader) OpenEvents(ctx context.Context, matchID uuid.UUID) (*EventCursor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT seq, payload
		FROM match_events
		WHERE match_id = $1
		ORDER BY seq
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query match events: %w", err)
	}
	return newEventCursor(rows), nil
}

// EventCursor decodes one match_events row per Next call. It satisfies
// events.Source.
type EventCursor struct {
	rows pgx.Rows
	read int
}

func newEventCursor(rows pgx.Rows) *EventCursor {
	return &EventCursor{rows: rows}
}

// Next returns the next decoded event, a *events.RecordError for a row that
// carries no single known variant, or io.EOF after the last row.
func (c *EventCursor) Next() (events.Event, error) {
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate match events: %w", err)
		}
		return nil, io.EOF
	}

	var (
		seq     int64
		payload []byte
	)
	if err := c.rows.Scan(&seq, &payload); err != nil {
		return nil, fmt.Errorf("scan match event %d: %w", c.read, err)
	}
	c.read++

	ev, err := events.DecodeRecord(payload)
	var recErr *events.RecordError
	if errors.As(err, &recErr) {
		recErr.Index = int(seq)
		return nil, recErr
	}
	if err != nil {
		return nil, fmt.Errorf("match event seq %d: %w", seq, err)
	}
	return ev, nil
}

// Close releases the underlying rows.
func (c *EventCursor) Close() {
	c.rows.Close()
}
