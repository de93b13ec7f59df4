package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"scoreworker/internal/engine"
	"scoreworker/internal/events"
	"scoreworker/internal/match"
	"scoreworker/internal/reference"
	"scoreworker/internal/scoring"
)

const testMatchID = "9a8f3f4e-2b1c-4c5d-8e7f-0a1b2c3d4e5f"

type closingSource struct {
	*events.SliceSource
	closed bool
}

func (s *closingSource) Close() { s.closed = true }

type fakeReader struct {
	exists bool
	stream *closingSource
}

func (r *fakeReader) MatchExists(context.Context, uuid.UUID) (bool, error) {
	return r.exists, nil
}

func (r *fakeReader) OpenEvents(context.Context, uuid.UUID) (EventStream, error) {
	return r.stream, nil
}

type fakeWriter struct {
	calls   int
	matchID uuid.UUID
	records []match.Record
}

func (w *fakeWriter) Write(_ context.Context, matchID uuid.UUID, records []match.Record) error {
	w.calls++
	w.matchID = matchID
	w.records = records
	return nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (r *fakeRefresher) RefreshAll(context.Context) error {
	r.calls++
	return r.err
}

func testOptions() engine.Options {
	return engine.Options{
		Tables: &reference.Tables{Agents: map[string]reference.Agent{
			"jett": {Name: "Jett", Role: reference.RoleDuelist},
		}},
		Weights: scoring.DefaultWeights(),
	}
}

func matchEvents() []events.Event {
	return []events.Event{
		&events.Configuration{
			Players: []events.ConfigPlayer{
				{PlayerID: "a", DisplayName: "Ace", AgentID: "jett"},
				{PlayerID: "b", DisplayName: "Bee", AgentID: "jett"},
			},
			Teams: []events.ConfigTeam{
				{TeamID: "Red", PlayerIDs: []string{"a"}},
				{TeamID: "Blue", PlayerIDs: []string{"b"}},
			},
		},
		&events.RoundStarted{RoundNumber: 0, AttackingTeamID: "Red", DefendingTeamID: "Blue"},
		&events.PlayerDied{KillerID: "a", DeceasedID: "b"},
		&events.RoundDecided{WinningTeamID: "Red"},
	}
}

func TestHandleScoresAndWrites(t *testing.T) {
	stream := &closingSource{SliceSource: events.NewSliceSource(matchEvents()...)}
	writer := &fakeWriter{}
	p := newScoreProcessor(&fakeReader{exists: true, stream: stream}, writer, testOptions())

	if err := p.Handle(context.Background(), []byte(`{"match_id":"`+testMatchID+`"}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if writer.calls != 1 || writer.matchID.String() != testMatchID {
		t.Fatalf("unexpected write: %d calls for %s", writer.calls, writer.matchID)
	}
	if len(writer.records) != 2 || writer.records[0].PlayerID != "a" {
		t.Fatalf("expected records in roster order, got %+v", writer.records)
	}
	if a := writer.records[0]; a.Kills.Attacking != 1 || a.RoundsWon != 1 || a.Score <= 0 {
		t.Errorf("unexpected record for a: %+v", a)
	}
	if !stream.closed {
		t.Error("event stream must be closed")
	}
}

func TestHandleRefreshFailureDoesNotFailJob(t *testing.T) {
	stream := &closingSource{SliceSource: events.NewSliceSource(matchEvents()...)}
	writer := &fakeWriter{}
	refresher := &fakeRefresher{err: errors.New("all 5 view refreshes failed")}
	p := newScoreProcessor(&fakeReader{exists: true, stream: stream}, writer, testOptions())
	p.refresher = refresher

	if err := p.Handle(context.Background(), []byte(`{"match_id":"`+testMatchID+`"}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if writer.calls != 1 || refresher.calls != 1 {
		t.Errorf("expected one write and one refresh, got %d and %d", writer.calls, refresher.calls)
	}
}

func TestHandleSkipsUnknownMatch(t *testing.T) {
	writer := &fakeWriter{}
	p := newScoreProcessor(&fakeReader{exists: false}, writer, testOptions())

	if err := p.Handle(context.Background(), []byte(`{"match_id":"`+testMatchID+`"}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if writer.calls != 0 {
		t.Error("nothing should be written for a missing match")
	}
}

func TestHandleRejectsBadPayload(t *testing.T) {
	p := newScoreProcessor(&fakeReader{exists: true}, &fakeWriter{}, testOptions())

	for _, payload := range []string{`not json`, `{"match_id":"nope"}`} {
		if err := p.Handle(context.Background(), []byte(payload)); err == nil {
			t.Errorf("expected error for payload %s", payload)
		}
	}
}

func TestHandleMissingRoster(t *testing.T) {
	stream := &closingSource{SliceSource: events.NewSliceSource(matchEvents()[1:]...)}
	writer := &fakeWriter{}
	p := newScoreProcessor(&fakeReader{exists: true, stream: stream}, writer, testOptions())

	err := p.Handle(context.Background(), []byte(`{"match_id":"`+testMatchID+`"}`))
	if !errors.Is(err, engine.ErrMissingRoster) {
		t.Fatalf("expected ErrMissingRoster, got %v", err)
	}
	if writer.calls != 0 {
		t.Error("nothing should be written without a roster")
	}
	if !stream.closed {
		t.Error("event stream must be closed on failure")
	}
}
