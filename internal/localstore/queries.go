package localstore

import (
	"database/sql"
	"errors"
	"fmt"

	"scoreworker/internal/match"
	"scoreworker/internal/reference"
)

// MatchSummary describes one stored scoring run.
type MatchSummary struct {
	Hash     string // sha256 of the telemetry input
	Source   string // file the telemetry was read from
	ScoredAt string // RFC 3339
	Events   int
	Warnings int
	Players  int
}

// MatchExists returns true if a match with the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatch stores a match and its records in one transaction, replacing any
// previous run with the same hash. Records keep their given order.
func (db *DB) SaveMatch(summary MatchSummary, records []match.Record) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM player_performance WHERE match_hash = ?`, summary.Hash); err != nil {
		return fmt.Errorf("purge player_performance: %w", err)
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(hash, source, scored_at, events, warnings, players)
		VALUES (?, ?, ?, ?, ?, ?)`,
		summary.Hash, summary.Source, summary.ScoredAt, summary.Events, summary.Warnings, len(records),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO player_performance(
			match_hash, position, player_id, display_name, team_id, agent_id, agent_name, role,
			kills_attacking, kills_defending, deaths_attacking, deaths_defending,
			assists_attacking, assists_defending,
			rounds_played, rounds_won, rounds_survived,
			econ_kills, first_bloods, multi_kills, clutch_wins,
			ability_usage_damaging, ability_usage_non_damaging,
			ability_effectiveness_damaging, ability_effectiveness_non_damaging,
			initiator_ability_deaths, score, normalized_score
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		_, err = stmt.Exec(
			summary.Hash, i, r.PlayerID, r.DisplayName, r.TeamID, r.AgentID, r.AgentName, string(r.Role),
			r.Kills.Attacking, r.Kills.Defending, r.Deaths.Attacking, r.Deaths.Defending,
			r.Assists.Attacking, r.Assists.Defending,
			r.RoundsPlayed, r.RoundsWon, r.RoundsSurvived,
			r.EconKills, r.FirstBloods, r.MultiKills, r.ClutchWins,
			r.AbilityUsage.Damaging, r.AbilityUsage.NonDamaging,
			r.AbilityEffectiveness.Damaging, r.AbilityEffectiveness.NonDamaging,
			r.InitiatorAbilityDeaths, r.Score, r.NormalizedScore,
		)
		if err != nil {
			return fmt.Errorf("insert player_performance for %s: %w", r.PlayerID, err)
		}
	}
	return tx.Commit()
}

// ListMatches returns all stored matches, most recent first.
func (db *DB) ListMatches() ([]MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, scored_at, events, warnings, players
		FROM matches ORDER BY scored_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchSummary
	for rows.Next() {
		var s MatchSummary
		if err := rows.Scan(&s.Hash, &s.Source, &s.ScoredAt, &s.Events, &s.Warnings, &s.Players); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose hash starts with the given
// prefix. It returns nil when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*MatchSummary, error) {
	var s MatchSummary
	err := db.conn.QueryRow(`
		SELECT hash, source, scored_at, events, warnings, players
		FROM matches WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%").
		Scan(&s.Hash, &s.Source, &s.ScoredAt, &s.Events, &s.Warnings, &s.Players)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRecords returns the stored player records of a match in roster order.
func (db *DB) GetRecords(hash string) ([]match.Record, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, display_name, team_id, agent_id, agent_name, role,
		       kills_attacking, kills_defending, deaths_attacking, deaths_defending,
		       assists_attacking, assists_defending,
		       rounds_played, rounds_won, rounds_survived,
		       econ_kills, first_bloods, multi_kills, clutch_wins,
		       ability_usage_damaging, ability_usage_non_damaging,
		       ability_effectiveness_damaging, ability_effectiveness_non_damaging,
		       initiator_ability_deaths, score, normalized_score
		FROM player_performance
		WHERE match_hash = ?
		ORDER BY position`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []match.Record
	for rows.Next() {
		var (
			r    match.Record
			role string
		)
		if err := rows.Scan(
			&r.PlayerID, &r.DisplayName, &r.TeamID, &r.AgentID, &r.AgentName, &role,
			&r.Kills.Attacking, &r.Kills.Defending, &r.Deaths.Attacking, &r.Deaths.Defending,
			&r.Assists.Attacking, &r.Assists.Defending,
			&r.RoundsPlayed, &r.RoundsWon, &r.RoundsSurvived,
			&r.EconKills, &r.FirstBloods, &r.MultiKills, &r.ClutchWins,
			&r.AbilityUsage.Damaging, &r.AbilityUsage.NonDamaging,
			&r.AbilityEffectiveness.Damaging, &r.AbilityEffectiveness.NonDamaging,
			&r.InitiatorAbilityDeaths, &r.Score, &r.NormalizedScore,
		); err != nil {
			return nil, err
		}
		r.Role = reference.Role(role)
		out = append(out, r)
	}
	return out, rows.Err()
}
