package match

import (
	"scoreworker/internal/events"
)

// startRound opens a round: sides are recorded, round-scoped fields reset and
// every player's rounds_played incremented.
func (s *State) startRound(rs *events.RoundStarted) {
	if s.phase == PhaseInProgress {
		s.warn(OutOfOrder, events.KindRoundStarted, "round %d started before round %d was decided",
			rs.RoundNumber, s.round.Number)
	}

	s.round = Round{
		Number:          rs.RoundNumber,
		AttackingTeamID: rs.AttackingTeamID,
		DefendingTeamID: rs.DefendingTeamID,
	}
	s.phase = PhaseInProgress

	if rs.AttackingTeamID != "" {
		if _, ok := s.teams[rs.AttackingTeamID]; !ok && s.rosterBuilt {
			s.warnOnce("team:"+rs.AttackingTeamID, OrphanEventReference, events.KindRoundStarted,
				"attacking team %q not in roster", rs.AttackingTeamID)
		}
	}

	for _, id := range s.playerOrder {
		p := s.players[id]
		p.resetRound()
		p.RoundsPlayed++
	}
}

// decideRound credits the winning team's members.
func (s *State) decideRound(rd *events.RoundDecided) {
	if s.phase != PhaseInProgress {
		s.warn(OutOfOrder, events.KindRoundDecided, "round decision with no round in progress (phase %s)", s.phase)
		return
	}
	s.phase = PhaseDecided

	team, ok := s.teams[rd.WinningTeamID]
	if !ok {
		s.warnOnce("team:"+rd.WinningTeamID, OrphanEventReference, events.KindRoundDecided,
			"winning team %q not in roster", rd.WinningTeamID)
		return
	}

	for _, pid := range team.PlayerIDs {
		p := s.players[pid]
		p.RoundsWon++
		if p.IsAlive {
			p.RoundsSurvived++
		}
		if p.InClutchScenario {
			p.ClutchWins++
		}
	}
}
