package match

import (
	"scoreworker/internal/reference"
)

// Side is the half of the map a team plays in the current round.
type Side int

const (
	SideAttacking Side = iota
	SideDefending
)

func (s Side) String() string {
	if s == SideAttacking {
		return "Attack"
	}
	return "Defense"
}

// SideCounts splits a counter by side.
type SideCounts struct {
	Attacking int `json:"attacking"`
	Defending int `json:"defending"`
}

func (c *SideCounts) add(side Side) {
	if side == SideAttacking {
		c.Attacking++
		return
	}
	c.Defending++
}

// Total sums both sides.
func (c SideCounts) Total() int {
	return c.Attacking + c.Defending
}

// AbilityCounts splits a counter by ability class.
type AbilityCounts struct {
	Damaging    int `json:"damaging"`
	NonDamaging int `json:"non_damaging"`
}

// Stats are the cumulative per-match counters. They only ever grow.
type Stats struct {
	Kills                  SideCounts    `json:"kills"`
	Deaths                 SideCounts    `json:"deaths"`
	Assists                SideCounts    `json:"assists"`
	RoundsWon              int           `json:"rounds_won"`
	RoundsSurvived         int           `json:"rounds_survived"`
	EconKills              int           `json:"econ_kills"`
	FirstBloods            int           `json:"first_bloods"`
	MultiKills             int           `json:"multi_kills"`
	ClutchWins             int           `json:"clutch_wins"`
	AbilityUsage           AbilityCounts `json:"ability_usage"`
	AbilityEffectiveness   AbilityCounts `json:"ability_effectiveness"`
	InitiatorAbilityDeaths int           `json:"initiator_ability_deaths"`
	RoundsPlayed           int           `json:"rounds_played"`
}

// Player is one match participant and its live state.
type Player struct {
	ID          string
	DisplayName string
	TeamID      string

	AgentID   string
	AgentName string
	Role      reference.Role

	Stats

	// Round-scoped; cleared at every round start.
	IsAlive                   bool
	CurrentWeapon             string
	CurrentWeaponCost         int
	AbilityUsedThisRound      bool
	KillsThisRound            int
	InClutchScenario          bool
	EnemiesAliveAtClutchStart int
	LastAbilityUsed           string
	LastAbilityTime           float64
	active                    activeEffects

	Score           float64
	NormalizedScore float64
}

func newPlayer(id, name string) *Player {
	return &Player{
		ID:          id,
		DisplayName: name,
		Role:        reference.RoleUnknown,
		IsAlive:     true,
	}
}

// ActiveAbilities returns the slot -> expiry map of lingering effects.
func (p *Player) ActiveAbilities() map[string]float64 {
	return p.active.slots()
}

func (p *Player) resetRound() {
	p.IsAlive = true
	p.CurrentWeapon = ""
	p.CurrentWeaponCost = 0
	p.AbilityUsedThisRound = false
	p.KillsThisRound = 0
	p.InClutchScenario = false
	p.EnemiesAliveAtClutchStart = 0
	p.LastAbilityUsed = ""
	p.LastAbilityTime = 0
	p.active.reset()
}

// Team is a fixed group of players.
type Team struct {
	ID        string
	PlayerIDs []string
}

// RoundPhase tracks where the match is in the round lifecycle.
type RoundPhase int

const (
	PhaseNotStarted RoundPhase = iota
	PhaseInProgress
	PhaseDecided
	PhaseMatchEnded
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseInProgress:
		return "InProgress"
	case PhaseDecided:
		return "Decided"
	default:
		return "MatchEnded"
	}
}

// Round is the round currently being played.
type Round struct {
	Number          int
	AttackingTeamID string
	DefendingTeamID string

	firstBloodTaken bool
}

// Record is the per-player output of a scored match.
type Record struct {
	PlayerID    string         `json:"player_id"`
	DisplayName string         `json:"display_name"`
	TeamID      string         `json:"team_id"`
	AgentID     string         `json:"agent_id"`
	AgentName   string         `json:"agent_name"`
	Role        reference.Role `json:"role"`
	Stats
	Score           float64 `json:"score"`
	NormalizedScore float64 `json:"normalized_score"`
}

// Record snapshots the player's output fields.
func (p *Player) Record() Record {
	return Record{
		PlayerID:        p.ID,
		DisplayName:     p.DisplayName,
		TeamID:          p.TeamID,
		AgentID:         p.AgentID,
		AgentName:       p.AgentName,
		Role:            p.Role,
		Stats:           p.Stats,
		Score:           p.Score,
		NormalizedScore: p.NormalizedScore,
	}
}
