// Package engine drives one match through the state machine: it pulls events
// in order, applies them and scores the roster once the source is exhausted.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"scoreworker/internal/events"
	"scoreworker/internal/match"
	"scoreworker/internal/reference"
	"scoreworker/internal/scoring"
)

// ErrMissingRoster is returned when the stream never built a roster, so
// there is nobody to score.
var ErrMissingRoster = errors.New("missing roster: no configuration event with players")

// Options configures a run.
type Options struct {
	Tables  *reference.Tables
	Weights scoring.Weights
	// OnWarning receives every recoverable problem, in event order.
	OnWarning func(match.Warning)
}

// Result is the scored output of one match.
type Result struct {
	Records  map[string]match.Record
	Order    []string // player ids in roster order
	Events   int
	Warnings int
}

// Ordered returns the records in roster order.
func (r *Result) Ordered() []match.Record {
	out := make([]match.Record, 0, len(r.Order))
	for _, id := range r.Order {
		out = append(out, r.Records[id])
	}
	return out
}

// Run consumes src until io.EOF and scores the match. The context is only
// checked between events, so state is never left half-applied.
func Run(ctx context.Context, src events.Source, opts Options) (*Result, error) {
	state := match.NewState(opts.Tables)
	res := &Result{}

	emit := func(w match.Warning) {
		res.Warnings++
		if opts.OnWarning != nil {
			opts.OnWarning(w)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var recErr *events.RecordError
		if errors.As(err, &recErr) {
			emit(match.Warning{Kind: match.SkippedRecord, Event: events.KindUnknown, Detail: recErr.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read event %d: %w", res.Events, err)
		}

		res.Events++
		for _, w := range state.Apply(ev) {
			emit(w)
		}
	}

	players := state.Players()
	if !state.RosterBuilt() || len(players) == 0 {
		return nil, ErrMissingRoster
	}

	scoring.Apply(players, opts.Weights)
	state.Finish()

	res.Records = make(map[string]match.Record, len(players))
	res.Order = make([]string, 0, len(players))
	for _, p := range players {
		res.Records[p.ID] = p.Record()
		res.Order = append(res.Order, p.ID)
	}
	return res, nil
}
