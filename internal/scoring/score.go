package scoring

import (
	"scoreworker/internal/match"
	"scoreworker/internal/reference"
)

// Score computes the weighted score of a role and cumulative stats.
func Score(role reference.Role, st match.Stats, w Weights) float64 {
	rw := w.ForRole(role)

	score := rw.Kill.apply(st.Kills.Attacking, st.Kills.Defending)
	score += rw.Death.apply(st.Deaths.Attacking, st.Deaths.Defending)
	score += float64(st.Assists.Total()) * rw.Assist
	score += float64(st.EconKills) * w.EconKill
	score += float64(st.RoundsWon) * w.RoundWin
	score += float64(st.RoundsSurvived) * w.RoundSurvive
	score += float64(st.AbilityEffectiveness.Damaging) * w.AbilityDamaging
	score += float64(st.AbilityEffectiveness.NonDamaging) * w.AbilityUtility
	score += float64(st.FirstBloods) * w.FirstBlood
	score += float64(st.MultiKills) * w.MultiKill
	score += float64(st.ClutchWins) * w.ClutchWin
	if role == reference.RoleInitiator {
		score += float64(st.InitiatorAbilityDeaths) * w.InitiatorDeath
	}
	return score
}

// Normalize divides score by rounds played; zero rounds yields zero.
func Normalize(score float64, roundsPlayed int) float64 {
	if roundsPlayed <= 0 {
		return 0
	}
	return score / float64(roundsPlayed)
}

// Apply sets Score and NormalizedScore on every player.
func Apply(players []*match.Player, w Weights) {
	for _, p := range players {
		p.Score = Score(p.Role, p.Stats, w)
		p.NormalizedScore = Normalize(p.Score, p.RoundsPlayed)
	}
}
