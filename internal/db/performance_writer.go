package db

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scoreworker/internal/match"
)

var performanceColumns = []string{
	"match_id", "player_id", "display_name", "team_id", "agent_id", "agent_name", "role",
	"kills_attacking", "kills_defending", "deaths_attacking", "deaths_defending",
	"assists_attacking", "assists_defending",
	"rounds_played", "rounds_won", "rounds_survived",
	"econ_kills", "first_bloods", "multi_kills", "clutch_wins",
	"ability_usage_damaging", "ability_usage_non_damaging",
	"ability_effectiveness_damaging", "ability_effectiveness_non_damaging",
	"initiator_ability_deaths", "score", "normalized_score", "created_at",
}

// PerformanceWriter stores scored player records.
type PerformanceWriter struct {
	pool *pgxpool.Pool
}

// NewPerformanceWriter creates a new performance writer.
func NewPerformanceWriter(pool *pgxpool.Pool) *PerformanceWriter {
	return &PerformanceWriter{pool: pool}
}

// Write replaces the stored records of a match within a single transaction.
// A per-match advisory lock serialises concurrent jobs for the same match, and
// the purge makes re-scoring idempotent.
func (w *PerformanceWriter) Write(ctx context.Context, matchID uuid.UUID, records []match.Record) error {
	tx, err := w.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(matchID)); err != nil {
		return fmt.Errorf("acquire match lock: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM match_player_performance WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("purge match_player_performance: %w", err)
	}

	if err := insertPerformance(ctx, tx, matchID, records, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert match_player_performance: %w", err)
	}

	return tx.Commit(ctx)
}

// insertPerformance inserts records using COPY protocol.
func insertPerformance(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, records []match.Record, now time.Time) error {
	if len(records) == 0 {
		return nil
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"match_player_performance"},
		performanceColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return performanceRow(matchID, records[i], now), nil
		}),
	)
	return err
}

func performanceRow(matchID uuid.UUID, r match.Record, now time.Time) []any {
	return []any{
		matchID, r.PlayerID, r.DisplayName, r.TeamID, r.AgentID, r.AgentName, string(r.Role),
		r.Kills.Attacking, r.Kills.Defending, r.Deaths.Attacking, r.Deaths.Defending,
		r.Assists.Attacking, r.Assists.Defending,
		r.RoundsPlayed, r.RoundsWon, r.RoundsSurvived,
		r.EconKills, r.FirstBloods, r.MultiKills, r.ClutchWins,
		r.AbilityUsage.Damaging, r.AbilityUsage.NonDamaging,
		r.AbilityEffectiveness.Damaging, r.AbilityEffectiveness.NonDamaging,
		r.InitiatorAbilityDeaths, r.Score, r.NormalizedScore, now,
	}
}

// advisoryLockKey generates a stable int64 key from a UUID for pg_advisory_lock.
func advisoryLockKey(id uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(id[:])
	return int64(binary.BigEndian.Uint64(h.Sum(nil)[:8]))
}
