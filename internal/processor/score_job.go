package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scoreworker/internal/db"
	"scoreworker/internal/engine"
	"scoreworker/internal/events"
	"scoreworker/internal/logging"
	"scoreworker/internal/match"
)

// JobPayload represents the incoming job from the Redis queue.
type JobPayload struct {
	MatchID string `json:"match_id"`
}

// EventStream is a Source backed by a resource that must be released.
type EventStream interface {
	events.Source
	Close()
}

type telemetryReader interface {
	MatchExists(ctx context.Context, matchID uuid.UUID) (bool, error)
	OpenEvents(ctx context.Context, matchID uuid.UUID) (EventStream, error)
}

type performanceWriter interface {
	Write(ctx context.Context, matchID uuid.UUID, records []match.Record) error
}

type viewRefresher interface {
	RefreshAll(ctx context.Context) error
}

// ScoreProcessor handles match scoring jobs.
type ScoreProcessor struct {
	reader    telemetryReader
	writer    performanceWriter
	refresher viewRefresher
	opts      engine.Options
}

// NewScoreProcessor creates a processor reading telemetry from Postgres and
// writing scored records back. refresher may be nil. opts.OnWarning is
// replaced per job.
func NewScoreProcessor(reader *db.TelemetryReader, writer *db.PerformanceWriter, refresher *db.ViewRefresher, opts engine.Options) *ScoreProcessor {
	p := newScoreProcessor(pgTelemetry{reader}, writer, opts)
	if refresher != nil {
		p.refresher = refresher
	}
	return p
}

func newScoreProcessor(reader telemetryReader, writer performanceWriter, opts engine.Options) *ScoreProcessor {
	return &ScoreProcessor{reader: reader, writer: writer, opts: opts}
}

// Handle processes a single scoring job from the queue.
func (p *ScoreProcessor) Handle(ctx context.Context, payload []byte) error {
	logger := logging.Logger()
	startTime := time.Now()

	var job JobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("unmarshal job payload: %w", err)
	}

	matchID, err := uuid.Parse(job.MatchID)
	if err != nil {
		return fmt.Errorf("parse match_id: %w", err)
	}

	logger.Infof("processing score job for match %s", matchID)

	exists, err := p.reader.MatchExists(ctx, matchID)
	if err != nil {
		return fmt.Errorf("check match exists: %w", err)
	}
	if !exists {
		logger.Warnf("match %s not found, skipping", matchID)
		return nil
	}

	stream, err := p.reader.OpenEvents(ctx, matchID)
	if err != nil {
		return fmt.Errorf("open match events: %w", err)
	}
	defer stream.Close()

	opts := p.opts
	opts.OnWarning = func(w match.Warning) {
		logger.Warnf("match %s: %s", matchID, w)
	}

	res, err := engine.Run(ctx, stream, opts)
	if err != nil {
		return fmt.Errorf("score match %s: %w", matchID, err)
	}

	logger.Infof("scored match %s: %d events, %d players, %d warnings",
		matchID, res.Events, len(res.Order), res.Warnings)

	if err := p.writer.Write(ctx, matchID, res.Ordered()); err != nil {
		return fmt.Errorf("write performance: %w", err)
	}

	if p.refresher != nil {
		if err := p.refresher.RefreshAll(ctx); err != nil {
			// Records are committed; the views catch up on the next job.
			logger.Warnf("view refresh failed for match %s: %v", matchID, err)
		}
	}

	elapsed := time.Since(startTime)
	logger.Infof("score job completed for match %s in %v", matchID, elapsed)

	return nil
}

type pgTelemetry struct {
	*db.TelemetryReader
}

func (t pgTelemetry) OpenEvents(ctx context.Context, matchID uuid.UUID) (EventStream, error) {
	return t.TelemetryReader.OpenEvents(ctx, matchID)
}
