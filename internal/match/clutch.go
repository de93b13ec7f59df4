package match

// detectClutches marks the last living member of a team as in a clutch, once
// per round, provided at least one opponent is still alive.
func (s *State) detectClutches() {
	for _, tid := range s.teamOrder {
		team := s.teams[tid]

		var survivor *Player
		alive := 0
		for _, pid := range team.PlayerIDs {
			if p := s.players[pid]; p.IsAlive {
				alive++
				survivor = p
			}
		}
		if alive != 1 || survivor.InClutchScenario {
			continue
		}

		opponents := s.aliveOpponents(tid)
		if opponents == 0 {
			continue
		}
		survivor.InClutchScenario = true
		survivor.EnemiesAliveAtClutchStart = opponents
	}
}

// aliveOpponents counts living players on teams other than teamID.
func (s *State) aliveOpponents(teamID string) int {
	n := 0
	for _, tid := range s.teamOrder {
		if tid == teamID {
			continue
		}
		for _, pid := range s.teams[tid].PlayerIDs {
			if s.players[pid].IsAlive {
				n++
			}
		}
	}
	return n
}
