package match

import (
	"scoreworker/internal/events"
	"scoreworker/internal/reference"
)

// useAbility records an ability activation and, for utility with a duration,
// opens a lingering effect window.
func (s *State) useAbility(au *events.AbilityUsed) {
	p := s.lookup(au.PlayerID, events.KindAbilityUsed)
	if p == nil {
		return
	}

	p.AbilityUsedThisRound = true
	p.LastAbilityUsed = au.AbilitySlot
	p.LastAbilityTime = s.clock

	ab := s.ability(p, au.AbilitySlot, events.KindAbilityUsed)
	if ab.DealsDamage {
		p.AbilityUsage.Damaging++
		return
	}
	p.AbilityUsage.NonDamaging++
	if ab.Duration > 0 {
		p.active.set(au.AbilitySlot, s.clock+ab.Duration)
	}
}

// ability classifies a slot of the player's agent kit. Unknown slots are
// treated as non-damaging with no duration.
func (s *State) ability(p *Player, slot string, kind events.Kind) reference.Ability {
	if agent, ok := s.tables.Agent(p.AgentID); ok {
		if ab, ok := agent.Ability(slot); ok {
			return ab
		}
	}
	s.warnOnce("ability:"+p.AgentID+"/"+slot, UnknownReference, kind,
		"ability slot %q of agent %q not in reference tables", slot, p.AgentID)
	return reference.Ability{}
}
