// Package match holds the per-match simulation state and applies telemetry
// events to it in order.
package match

import (
	"scoreworker/internal/events"
	"scoreworker/internal/reference"
)

// State owns every player and team of one match. It is not safe for
// concurrent use; independent matches use independent States.
type State struct {
	tables *reference.Tables

	players     map[string]*Player
	playerOrder []string
	teams       map[string]*Team
	teamOrder   []string
	rosterBuilt bool

	round Round
	phase RoundPhase
	clock float64 // advanced once per snapshot

	pending  []Warning
	reported map[string]bool
}

// NewState returns an empty match state resolving assets through tables.
func NewState(tables *reference.Tables) *State {
	return &State{
		tables:   tables,
		players:  make(map[string]*Player),
		teams:    make(map[string]*Team),
		reported: make(map[string]bool),
	}
}

// Apply folds one event into the state and returns any warnings it raised.
func (s *State) Apply(ev events.Event) []Warning {
	s.pending = nil

	if s.phase == PhaseMatchEnded {
		kind := events.KindUnknown
		if ev != nil {
			kind = ev.Kind()
		}
		s.warn(OutOfOrder, kind, "match already scored, event ignored")
		return s.pending
	}

	switch e := ev.(type) {
	case *events.Configuration:
		s.buildRoster(e)
	case *events.RoundStarted:
		s.startRound(e)
	case *events.Snapshot:
		s.applySnapshot(e)
	case *events.PlayerDied:
		s.applyKill(e)
		s.detectClutches()
	case *events.Damage:
		s.applyDamage(e)
	case *events.AbilityUsed:
		s.useAbility(e)
	case *events.RoundDecided:
		s.decideRound(e)
	default:
		s.warn(SkippedRecord, events.KindUnknown, "unsupported event %T", ev)
	}
	return s.pending
}

// Finish marks the match as ended. No further events are applied.
func (s *State) Finish() {
	s.phase = PhaseMatchEnded
}

// Players returns the roster in configuration order.
func (s *State) Players() []*Player {
	out := make([]*Player, 0, len(s.playerOrder))
	for _, id := range s.playerOrder {
		out = append(out, s.players[id])
	}
	return out
}

// Player looks up a player by id.
func (s *State) Player(id string) (*Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// RosterBuilt reports whether a configuration event has been applied.
func (s *State) RosterBuilt() bool { return s.rosterBuilt }

// SideOf returns the player's side in the current round: attacking iff the
// player's team is the round's attacking team.
func (s *State) SideOf(p *Player) Side {
	if p.TeamID != "" && p.TeamID == s.round.AttackingTeamID {
		return SideAttacking
	}
	return SideDefending
}

// lookup resolves a player id named by an event. Empty ids mean "no player"
// and are not reported.
func (s *State) lookup(id string, kind events.Kind) *Player {
	if id == "" {
		return nil
	}
	p, ok := s.players[id]
	if !ok {
		s.warnOnce("player:"+id, OrphanEventReference, kind, "player %q not in roster", id)
		return nil
	}
	return p
}
