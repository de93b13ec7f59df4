package scoring

import (
	"math"
	"testing"

	"scoreworker/internal/match"
	"scoreworker/internal/reference"
)

// unitWeights gives every term a distinct power of two so each contribution
// can be read back from the total.
func unitWeights() Weights {
	return Weights{
		Roles: map[reference.Role]RoleWeights{
			reference.RoleInitiator: {
				Kill:   SideWeights{Attacking: 1, Defending: 2},
				Death:  SideWeights{Attacking: -4, Defending: -8},
				Assist: 16,
			},
			reference.RoleUnknown: {
				Kill:   SideWeights{Attacking: 100, Defending: 100},
				Assist: 0,
			},
		},
		EconKill:        32,
		RoundWin:        64,
		RoundSurvive:    128,
		AbilityDamaging: 256,
		AbilityUtility:  512,
		FirstBlood:      1024,
		MultiKill:       2048,
		ClutchWin:       4096,
		InitiatorDeath:  -8192,
	}
}

func onesOfEverything() match.Stats {
	return match.Stats{
		Kills:                  match.SideCounts{Attacking: 1, Defending: 1},
		Deaths:                 match.SideCounts{Attacking: 1, Defending: 1},
		Assists:                match.SideCounts{Attacking: 1, Defending: 0},
		RoundsWon:              1,
		RoundsSurvived:         1,
		EconKills:              1,
		FirstBloods:            1,
		MultiKills:             1,
		ClutchWins:             1,
		AbilityEffectiveness:   match.AbilityCounts{Damaging: 1, NonDamaging: 1},
		InitiatorAbilityDeaths: 1,
		RoundsPlayed:           4,
	}
}

func TestScoreEveryTerm(t *testing.T) {
	got := Score(reference.RoleInitiator, onesOfEverything(), unitWeights())
	want := 1.0 + 2 - 4 - 8 + 16 + 32 + 64 + 128 + 256 + 512 + 1024 + 2048 + 4096 - 8192
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestInitiatorPenaltyOnlyForInitiators(t *testing.T) {
	w := unitWeights()
	w.Roles[reference.RoleDuelist] = w.Roles[reference.RoleInitiator]

	st := match.Stats{InitiatorAbilityDeaths: 3}
	if got := Score(reference.RoleDuelist, st, w); got != 0 {
		t.Errorf("duelist must not pay the initiator penalty, got %v", got)
	}
	if got := Score(reference.RoleInitiator, st, w); got != -3*8192 {
		t.Errorf("expected initiator penalty, got %v", got)
	}
}

func TestUnlistedRoleUsesUnknownWeights(t *testing.T) {
	st := match.Stats{Kills: match.SideCounts{Attacking: 2}}
	if got := Score(reference.RoleSentinel, st, unitWeights()); got != 200 {
		t.Errorf("expected Unknown role weights, got %v", got)
	}

	empty := Weights{}
	if got := Score(reference.RoleSentinel, st, empty); got != 0 {
		t.Errorf("expected zero without any role weights, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(12, 0); got != 0 {
		t.Errorf("zero rounds must normalize to 0, got %v", got)
	}
	if got := Normalize(-5, 0); got != 0 || math.IsNaN(got) {
		t.Errorf("zero rounds must normalize to 0, got %v", got)
	}
	if got := Normalize(12, 4); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestApplySetsScores(t *testing.T) {
	p := &match.Player{ID: "p", Role: reference.RoleInitiator, Stats: onesOfEverything()}
	idle := &match.Player{ID: "idle", Role: reference.RoleInitiator}
	w := unitWeights()

	Apply([]*match.Player{p, idle}, w)

	want := Score(reference.RoleInitiator, p.Stats, w)
	if p.Score != want || p.NormalizedScore != want/4 {
		t.Errorf("unexpected scores: %v / %v", p.Score, p.NormalizedScore)
	}
	if idle.Score != 0 || idle.NormalizedScore != 0 {
		t.Errorf("idle player scores 0, got %v / %v", idle.Score, idle.NormalizedScore)
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	for _, role := range []reference.Role{
		reference.RoleDuelist, reference.RoleInitiator, reference.RoleController,
		reference.RoleSentinel, reference.RoleUnknown,
	} {
		rw, ok := w.Roles[role]
		if !ok {
			t.Errorf("default weights missing role %s", role)
			continue
		}
		if rw.Kill.Attacking <= 0 || rw.Death.Attacking >= 0 {
			t.Errorf("role %s: kills must add and deaths subtract: %+v", role, rw)
		}
	}
	if w.ClutchWin <= 0 || w.InitiatorDeath >= 0 {
		t.Errorf("unexpected defaults: %+v", w)
	}
}

func TestParseWeightsRejectsGarbage(t *testing.T) {
	if _, err := ParseWeights([]byte("roles: [1, 2")); err == nil {
		t.Error("expected parse error")
	}
}
