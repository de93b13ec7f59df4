package match

import (
	"scoreworker/internal/events"
	"scoreworker/internal/reference"
)

// applyKill attributes a playerDied event.
func (s *State) applyKill(pd *events.PlayerDied) {
	killer := s.lookup(pd.KillerID, events.KindPlayerDied)
	victim := s.lookup(pd.DeceasedID, events.KindPlayerDied)

	firstBlood := !s.round.firstBloodTaken
	s.round.firstBloodTaken = true

	if killer != nil && killer == victim {
		// Exception to killer credit: a self-kill records the death but credits
		// no kill to the player. First blood is still consumed.
		killer = nil
	}

	if victim != nil {
		victim.Deaths.add(s.SideOf(victim))
		victim.IsAlive = false
		if victim.Role == reference.RoleInitiator && victim.AbilityUsedThisRound {
			victim.InitiatorAbilityDeaths++
		}
	}

	if killer != nil {
		killer.Kills.add(s.SideOf(killer))
		killer.KillsThisRound++

		if victim != nil && killer.CurrentWeaponCost < victim.CurrentWeaponCost {
			killer.EconKills++
		}
		if firstBlood {
			killer.FirstBloods++
		}
		// Binary per round: only the transition from one kill to two counts.
		if killer.KillsThisRound == 2 {
			killer.MultiKills++
		}
		if pd.AbilitySlot != "" && s.ability(killer, pd.AbilitySlot, events.KindPlayerDied).DealsDamage {
			killer.AbilityEffectiveness.Damaging++
		}
	}

	for _, aid := range pd.AssistantIDs {
		assistant := s.lookup(aid, events.KindPlayerDied)
		if assistant == nil {
			continue
		}
		assistant.Assists.add(s.SideOf(assistant))
		if assistant.active.anyActive(s.clock) {
			assistant.AbilityEffectiveness.NonDamaging++
		}
	}
}

// applyDamage credits damaging-ability effectiveness. Alive state is left to
// playerDied and snapshots.
func (s *State) applyDamage(d *events.Damage) {
	if d.AbilitySlot == "" {
		return
	}
	causer := s.lookup(d.CauserID, events.KindDamage)
	if causer == nil {
		return
	}
	if s.ability(causer, d.AbilitySlot, events.KindDamage).DealsDamage {
		causer.AbilityEffectiveness.Damaging++
	}
}
