package match

import (
	"scoreworker/internal/events"
)

// applySnapshot refreshes alive state and equipment, then advances the
// logical clock and expires lingering ability effects.
func (s *State) applySnapshot(snap *events.Snapshot) {
	for _, sp := range snap.Players {
		p := s.lookup(sp.PlayerID, events.KindSnapshot)
		if p == nil {
			continue
		}
		if !sp.Alive {
			p.IsAlive = false
			continue
		}
		p.IsAlive = true
		p.CurrentWeapon, p.CurrentWeaponCost = s.resolveWeapon(sp.EquippedItemID)
	}

	s.clock++
	for _, id := range s.playerOrder {
		s.players[id].active.prune(s.clock)
	}
}

// resolveWeapon maps an item guid to a name and cost. Unknown items cost 0.
func (s *State) resolveWeapon(id string) (string, int) {
	if id == "" {
		return "", 0
	}
	w, ok := s.tables.Weapon(id)
	if !ok {
		s.warnOnce("weapon:"+id, UnknownReference, events.KindSnapshot,
			"weapon %q not in reference tables, cost treated as 0", id)
		return id, 0
	}
	return w.Name, w.Cost
}
