package match

import (
	"scoreworker/internal/events"
	"scoreworker/internal/reference"
)

// buildRoster creates players and teams from the configuration event.
func (s *State) buildRoster(cfg *events.Configuration) {
	if s.rosterBuilt {
		s.warn(OutOfOrder, events.KindConfiguration, "duplicate configuration ignored")
		return
	}
	s.rosterBuilt = true

	for _, cp := range cfg.Players {
		if cp.PlayerID == "" {
			s.warn(SkippedRecord, events.KindConfiguration, "player entry without id")
			continue
		}
		if _, dup := s.players[cp.PlayerID]; dup {
			s.warn(OutOfOrder, events.KindConfiguration, "player %q listed twice", cp.PlayerID)
			continue
		}

		p := newPlayer(cp.PlayerID, cp.DisplayName)
		p.AgentID = cp.AgentID
		if agent, ok := s.tables.Agent(cp.AgentID); ok {
			p.AgentName = agent.Name
			p.Role = agent.Role
		} else {
			p.AgentName = cp.AgentID
			p.Role = reference.RoleUnknown
			s.warnOnce("agent:"+cp.AgentID, UnknownReference, events.KindConfiguration,
				"agent %q for player %q not in reference tables", cp.AgentID, cp.PlayerID)
		}

		s.players[p.ID] = p
		s.playerOrder = append(s.playerOrder, p.ID)
	}

	for _, ct := range cfg.Teams {
		if _, dup := s.teams[ct.TeamID]; dup || ct.TeamID == "" {
			s.warn(OutOfOrder, events.KindConfiguration, "team %q invalid or listed twice", ct.TeamID)
			continue
		}
		team := &Team{ID: ct.TeamID}
		for _, pid := range ct.PlayerIDs {
			p, ok := s.players[pid]
			if !ok {
				s.warnOnce("player:"+pid, OrphanEventReference, events.KindConfiguration,
					"team %q member %q not in player list", ct.TeamID, pid)
				continue
			}
			if p.TeamID != "" {
				s.warn(OutOfOrder, events.KindConfiguration,
					"player %q already on team %q, not moved to %q", pid, p.TeamID, ct.TeamID)
				continue
			}
			p.TeamID = team.ID
			team.PlayerIDs = append(team.PlayerIDs, pid)
		}
		s.teams[team.ID] = team
		s.teamOrder = append(s.teamOrder, team.ID)
	}
}
