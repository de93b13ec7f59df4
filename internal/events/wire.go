package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Wire shapes of the telemetry feed. Every reference is wrapped in an object
// ({"value": ...} for ids, {"fallback": {...}} for assets), and optional
// references may be absent or null.

type wireID struct {
	Value string `json:"value"`
}

// wireAssetRef and wireAbilityRef are only used for optional references. A
// value of the wrong shape decodes as absent instead of failing the record.
type wireAssetRef struct {
	Fallback struct {
		GUID string `json:"guid"`
	} `json:"fallback"`
}

func (r *wireAssetRef) UnmarshalJSON(data []byte) error {
	type plain wireAssetRef
	return lenient(data, (*plain)(r))
}

type wireAbilityRef struct {
	Fallback struct {
		InventorySlot struct {
			Slot string `json:"slot"`
		} `json:"inventorySlot"`
	} `json:"fallback"`
}

func (r *wireAbilityRef) UnmarshalJSON(data []byte) error {
	type plain wireAbilityRef
	return lenient(data, (*plain)(r))
}

// lenient decodes data into v, resetting v to its zero value on a type
// mismatch. Syntax errors are still returned.
func lenient[T any](data []byte, v *T) error {
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		var zero T
		*v = zero
		return nil
	}
	return err
}

type wireConfiguration struct {
	Players []struct {
		PlayerID      wireID        `json:"playerId"`
		DisplayName   string        `json:"displayName"`
		SelectedAgent *wireAssetRef `json:"selectedAgent"`
	} `json:"players"`
	Teams []struct {
		TeamID        wireID   `json:"teamId"`
		PlayersInTeam []wireID `json:"playersInTeam"`
	} `json:"teams"`
}

type wireRoundStarted struct {
	RoundNumber int `json:"roundNumber"`
	SpikeMode   *struct {
		AttackingTeam wireID `json:"attackingTeam"`
		DefendingTeam wireID `json:"defendingTeam"`
	} `json:"spikeMode"`
}

type wireSnapshot struct {
	Players []struct {
		PlayerID   wireID `json:"playerId"`
		AliveState *struct {
			EquippedItem struct {
				GUID string `json:"guid"`
			} `json:"equippedItem"`
		} `json:"aliveState"`
	} `json:"players"`
}

type wirePlayerDied struct {
	KillerID   wireID          `json:"killerId"`
	DeceasedID wireID          `json:"deceasedId"`
	Weapon     *wireAssetRef   `json:"weapon"`
	Ability    *wireAbilityRef `json:"ability"`
	Assistants []struct {
		AssistantID wireID `json:"assistantId"`
	} `json:"assistants"`
}

type wireDamageEvent struct {
	CauserID     wireID          `json:"causerId"`
	VictimID     wireID          `json:"victimId"`
	DamageAmount float64         `json:"damageAmount"`
	Ability      *wireAbilityRef `json:"ability"`
}

type wireAbilityUsed struct {
	PlayerID        wireID          `json:"playerId"`
	Ability         *wireAbilityRef `json:"ability"`
	ChargesConsumed int             `json:"chargesConsumed"`
}

type wireRoundDecided struct {
	Result *struct {
		WinningTeam wireID `json:"winningTeam"`
	} `json:"result"`
}

type wireRecord struct {
	Configuration *wireConfiguration `json:"configuration"`
	RoundStarted  *wireRoundStarted  `json:"roundStarted"`
	Snapshot      *wireSnapshot      `json:"snapshot"`
	PlayerDied    *wirePlayerDied    `json:"playerDied"`
	DamageEvent   *wireDamageEvent   `json:"damageEvent"`
	AbilityUsed   *wireAbilityUsed   `json:"abilityUsed"`
	RoundDecided  *wireRoundDecided  `json:"roundDecided"`
}

// RecordError reports a record that was well-formed JSON but did not carry
// exactly one known event variant, or whose required fields had the wrong
// type. The stream can continue past it.
type RecordError struct {
	Index  int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// DecodeRecord decodes a single telemetry record. A record whose required
// fields have the wrong type yields a *RecordError; malformed JSON does not.
func DecodeRecord(data []byte) (Event, error) {
	return decodeRecord(data, 0)
}

func decodeRecord(data []byte, index int) (Event, error) {
	var rec wireRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &RecordError{Index: index, Reason: err.Error()}
		}
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec.toEvent(index)
}

func (r *wireRecord) toEvent(index int) (Event, error) {
	var found []string
	var ev Event

	if r.Configuration != nil {
		found = append(found, KindConfiguration.String())
		ev = r.Configuration.toEvent()
	}
	if r.RoundStarted != nil {
		found = append(found, KindRoundStarted.String())
		ev = r.RoundStarted.toEvent()
	}
	if r.Snapshot != nil {
		found = append(found, KindSnapshot.String())
		ev = r.Snapshot.toEvent()
	}
	if r.PlayerDied != nil {
		found = append(found, KindPlayerDied.String())
		ev = r.PlayerDied.toEvent()
	}
	if r.DamageEvent != nil {
		found = append(found, KindDamage.String())
		ev = r.DamageEvent.toEvent()
	}
	if r.AbilityUsed != nil {
		found = append(found, KindAbilityUsed.String())
		ev = r.AbilityUsed.toEvent()
	}
	if r.RoundDecided != nil {
		found = append(found, KindRoundDecided.String())
		ev = r.RoundDecided.toEvent()
	}

	switch len(found) {
	case 1:
		return ev, nil
	case 0:
		return nil, &RecordError{Index: index, Reason: "no known event variant"}
	default:
		return nil, &RecordError{Index: index, Reason: "multiple event variants: " + strings.Join(found, ", ")}
	}
}

func (w *wireConfiguration) toEvent() *Configuration {
	cfg := &Configuration{
		Players: make([]ConfigPlayer, 0, len(w.Players)),
		Teams:   make([]ConfigTeam, 0, len(w.Teams)),
	}
	for _, p := range w.Players {
		cp := ConfigPlayer{PlayerID: p.PlayerID.Value, DisplayName: p.DisplayName}
		if p.SelectedAgent != nil {
			cp.AgentID = p.SelectedAgent.Fallback.GUID
		}
		cfg.Players = append(cfg.Players, cp)
	}
	for _, t := range w.Teams {
		ct := ConfigTeam{TeamID: t.TeamID.Value, PlayerIDs: make([]string, 0, len(t.PlayersInTeam))}
		for _, id := range t.PlayersInTeam {
			ct.PlayerIDs = append(ct.PlayerIDs, id.Value)
		}
		cfg.Teams = append(cfg.Teams, ct)
	}
	return cfg
}

func (w *wireRoundStarted) toEvent() *RoundStarted {
	rs := &RoundStarted{RoundNumber: w.RoundNumber}
	if w.SpikeMode != nil {
		rs.AttackingTeamID = w.SpikeMode.AttackingTeam.Value
		rs.DefendingTeamID = w.SpikeMode.DefendingTeam.Value
	}
	return rs
}

func (w *wireSnapshot) toEvent() *Snapshot {
	snap := &Snapshot{Players: make([]SnapshotPlayer, 0, len(w.Players))}
	for _, p := range w.Players {
		sp := SnapshotPlayer{PlayerID: p.PlayerID.Value}
		if p.AliveState != nil {
			sp.Alive = true
			sp.EquippedItemID = p.AliveState.EquippedItem.GUID
		}
		snap.Players = append(snap.Players, sp)
	}
	return snap
}

func (w *wirePlayerDied) toEvent() *PlayerDied {
	pd := &PlayerDied{
		KillerID:     w.KillerID.Value,
		DeceasedID:   w.DeceasedID.Value,
		AbilitySlot:  w.Ability.slot(),
		AssistantIDs: make([]string, 0, len(w.Assistants)),
	}
	if w.Weapon != nil {
		pd.WeaponID = w.Weapon.Fallback.GUID
	}
	for _, a := range w.Assistants {
		pd.AssistantIDs = append(pd.AssistantIDs, a.AssistantID.Value)
	}
	return pd
}

func (w *wireDamageEvent) toEvent() *Damage {
	return &Damage{
		CauserID:    w.CauserID.Value,
		VictimID:    w.VictimID.Value,
		Amount:      w.DamageAmount,
		AbilitySlot: w.Ability.slot(),
	}
}

func (w *wireAbilityUsed) toEvent() *AbilityUsed {
	return &AbilityUsed{
		PlayerID:        w.PlayerID.Value,
		AbilitySlot:     w.Ability.slot(),
		ChargesConsumed: w.ChargesConsumed,
	}
}

func (w *wireRoundDecided) toEvent() *RoundDecided {
	rd := &RoundDecided{}
	if w.Result != nil {
		rd.WinningTeamID = w.Result.WinningTeam.Value
	}
	return rd
}

func (a *wireAbilityRef) slot() string {
	if a == nil {
		return ""
	}
	return a.Fallback.InventorySlot.Slot
}
