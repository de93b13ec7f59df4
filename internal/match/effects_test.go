package match

import "testing"

func TestActiveEffectsPruneInExpiryOrder(t *testing.T) {
	var a activeEffects
	a.set("GRENADE", 5)
	a.set("ABILITY_1", 2)
	a.set("ABILITY_2", 3)

	a.prune(2)
	got := a.slots()
	if _, ok := got["ABILITY_1"]; ok || len(got) != 2 {
		t.Fatalf("expected ABILITY_1 pruned at its expiry, got %v", got)
	}

	a.prune(4)
	got = a.slots()
	if len(got) != 1 || got["GRENADE"] != 5 {
		t.Fatalf("expected only GRENADE left, got %v", got)
	}
	if !a.anyActive(4) || a.anyActive(5) {
		t.Error("GRENADE is active strictly before its expiry")
	}
}

func TestActiveEffectsSetRefreshesSlot(t *testing.T) {
	var a activeEffects
	a.set("GRENADE", 2)
	a.set("ABILITY_1", 4)
	a.set("GRENADE", 6)

	if n := len(a.slots()); n != 2 {
		t.Fatalf("re-using a slot must not duplicate it, got %d entries", n)
	}
	a.prune(4)
	if got := a.slots(); len(got) != 1 || got["GRENADE"] != 6 {
		t.Errorf("expected refreshed GRENADE to outlive ABILITY_1, got %v", got)
	}

	a.reset()
	if len(a.slots()) != 0 || a.anyActive(0) {
		t.Error("reset must clear every effect")
	}
	a.set("ULTIMATE", 1)
	if len(a.slots()) != 1 {
		t.Error("effects usable after reset")
	}
}
