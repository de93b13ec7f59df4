package db

import (
	"errors"
	"io"
	"testing"

	"github.com/jackc/pgx/v5"

	"scoreworker/internal/events"
)

type fakeRow struct {
	seq     int64
	payload string
}

// fakeRows serves canned match_events rows. Methods the cursor does not use
// are left to the embedded nil interface.
type fakeRows struct {
	pgx.Rows
	rows   []fakeRow
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	*dest[0].(*int64) = row.seq
	*dest[1].(*[]byte) = []byte(row.payload)
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

func TestEventCursorDecodesRows(t *testing.T) {
	rows := &fakeRows{rows: []fakeRow{
		{seq: 1, payload: `{"roundStarted": {"roundNumber": 3, "spikeMode": {"attackingTeam": {"value": "Red"}, "defendingTeam": {"value": "Blue"}}}}`},
		{seq: 2, payload: `{"matchPaused": {}}`},
		{seq: 3, payload: `{"roundDecided": {"result": {"winningTeam": {"value": "Blue"}}}}`},
	}}
	cur := newEventCursor(rows)

	ev, err := cur.Next()
	if err != nil {
		t.Fatalf("first row: %v", err)
	}
	if rs, ok := ev.(*events.RoundStarted); !ok || rs.RoundNumber != 3 || rs.AttackingTeamID != "Red" {
		t.Errorf("unexpected first event: %#v", ev)
	}

	_, err = cur.Next()
	var recErr *events.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected RecordError, got %v", err)
	}
	if recErr.Index != 2 {
		t.Errorf("expected record index to carry seq 2, got %d", recErr.Index)
	}

	ev, err = cur.Next()
	if err != nil || ev.Kind() != events.KindRoundDecided {
		t.Fatalf("expected roundDecided, got %v / %v", ev, err)
	}

	if _, err := cur.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}

	cur.Close()
	if !rows.closed {
		t.Error("Close must close the rows")
	}
}

func TestEventCursorSurfacesRowError(t *testing.T) {
	boom := errors.New("connection reset")
	cur := newEventCursor(&fakeRows{err: boom})

	_, err := cur.Next()
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped row error, got %v", err)
	}
	if errors.Is(err, io.EOF) {
		t.Error("row error must not look like end of stream")
	}
}

func TestEventCursorToleratesMistypedFields(t *testing.T) {
	rows := &fakeRows{rows: []fakeRow{
		{seq: 4, payload: `{"playerDied": {"killerId": {"value": "A"}, "deceasedId": {"value": "B"}, "weapon": "vandal"}}`},
		{seq: 5, payload: `{"damageEvent": {"causerId": {"value": "A"}, "victimId": {"value": "B"}, "damageAmount": "lots"}}`},
		{seq: 6, payload: `{"roundDecided": {"result": {"winningTeam": {"value": "Blue"}}}}`},
	}}
	cur := newEventCursor(rows)

	ev, err := cur.Next()
	if err != nil {
		t.Fatalf("mistyped weapon must not fail the row: %v", err)
	}
	if pd, ok := ev.(*events.PlayerDied); !ok || pd.KillerID != "A" || pd.WeaponID != "" {
		t.Errorf("unexpected event: %#v", ev)
	}

	_, err = cur.Next()
	var recErr *events.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected RecordError, got %v", err)
	}
	if recErr.Index != 5 {
		t.Errorf("expected record index to carry seq 5, got %d", recErr.Index)
	}

	if ev, err := cur.Next(); err != nil || ev.Kind() != events.KindRoundDecided {
		t.Fatalf("expected roundDecided, got %v / %v", ev, err)
	}
}
