package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"scoreworker/internal/localstore"
	"scoreworker/internal/match"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// ByNormalizedScore returns a copy of records ranked by normalized score,
// highest first. Ties keep roster order.
func ByNormalizedScore(records []match.Record) []match.Record {
	out := append([]match.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NormalizedScore > out[j].NormalizedScore
	})
	return out
}

// PrintMatchSummary prints a one-line header for a stored match.
func PrintMatchSummary(w io.Writer, s localstore.MatchSummary) {
	fmt.Fprintf(w, "\nSource: %s  |  Scored: %s  |  Events: %d  |  Warnings: %d  |  Hash: %s\n\n",
		s.Source, s.ScoredAt, s.Events, s.Warnings, shortHash(s.Hash))
}

// PrintScoreTable prints the ranked score table.
func PrintScoreTable(w io.Writer, records []match.Record) {
	table := newTable(w)
	table.Header(
		"#", "PLAYER", "TEAM", "AGENT", "ROLE", "K", "D", "A",
		"FB", "MK", "ECON", "CLUTCH", "WON", "SURV", "RND", "SCORE", "NORM",
	)

	for i, r := range ByNormalizedScore(records) {
		table.Append(
			strconv.Itoa(i+1),
			r.DisplayName,
			r.TeamID,
			r.AgentName,
			string(r.Role),
			strconv.Itoa(r.Kills.Total()),
			strconv.Itoa(r.Deaths.Total()),
			strconv.Itoa(r.Assists.Total()),
			strconv.Itoa(r.FirstBloods),
			strconv.Itoa(r.MultiKills),
			strconv.Itoa(r.EconKills),
			strconv.Itoa(r.ClutchWins),
			strconv.Itoa(r.RoundsWon),
			strconv.Itoa(r.RoundsSurvived),
			strconv.Itoa(r.RoundsPlayed),
			fmt.Sprintf("%.2f", r.Score),
			fmt.Sprintf("%.3f", r.NormalizedScore),
		)
	}
	table.Render()
}

// PrintSideTable prints the attack/defense split and ability counters in
// roster order.
func PrintSideTable(w io.Writer, records []match.Record) {
	table := newTable(w)
	table.Header(
		"PLAYER", "K_ATK", "K_DEF", "D_ATK", "D_DEF", "A_ATK", "A_DEF",
		"ABIL_DMG", "ABIL_UTIL", "EFF_DMG", "EFF_UTIL", "INIT_DEATHS",
	)

	for _, r := range records {
		table.Append(
			r.DisplayName,
			strconv.Itoa(r.Kills.Attacking),
			strconv.Itoa(r.Kills.Defending),
			strconv.Itoa(r.Deaths.Attacking),
			strconv.Itoa(r.Deaths.Defending),
			strconv.Itoa(r.Assists.Attacking),
			strconv.Itoa(r.Assists.Defending),
			strconv.Itoa(r.AbilityUsage.Damaging),
			strconv.Itoa(r.AbilityUsage.NonDamaging),
			strconv.Itoa(r.AbilityEffectiveness.Damaging),
			strconv.Itoa(r.AbilityEffectiveness.NonDamaging),
			strconv.Itoa(r.InitiatorAbilityDeaths),
		)
	}
	table.Render()
}

// PrintMatchList prints stored matches.
func PrintMatchList(w io.Writer, matches []localstore.MatchSummary) {
	table := newTable(w)
	table.Header("HASH", "SOURCE", "SCORED", "PLAYERS", "EVENTS", "WARNINGS")
	for _, m := range matches {
		table.Append(
			shortHash(m.Hash),
			m.Source,
			m.ScoredAt,
			strconv.Itoa(m.Players),
			strconv.Itoa(m.Events),
			strconv.Itoa(m.Warnings),
		)
	}
	table.Render()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
