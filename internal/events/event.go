package events

import "fmt"

// Kind identifies which variant of the telemetry union an Event is.
type Kind int

const (
	KindConfiguration Kind = iota
	KindRoundStarted
	KindSnapshot
	KindPlayerDied
	KindDamage
	KindAbilityUsed
	KindRoundDecided
)

// KindUnknown tags warnings that are not tied to a decoded event.
const KindUnknown Kind = -1

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindRoundStarted:
		return "roundStarted"
	case KindSnapshot:
		return "snapshot"
	case KindPlayerDied:
		return "playerDied"
	case KindDamage:
		return "damageEvent"
	case KindAbilityUsed:
		return "abilityUsed"
	case KindRoundDecided:
		return "roundDecided"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one decoded telemetry record. The set of implementations is closed:
// only the types in this package satisfy it.
type Event interface {
	Kind() Kind
	event()
}

// ConfigPlayer is a roster entry from the configuration record.
type ConfigPlayer struct {
	PlayerID    string
	DisplayName string
	AgentID     string // empty when the record carried no agent reference
}

// ConfigTeam lists the members of one team.
type ConfigTeam struct {
	TeamID    string
	PlayerIDs []string
}

// Configuration is emitted once at match start and defines the roster.
type Configuration struct {
	Players []ConfigPlayer
	Teams   []ConfigTeam
}

// RoundStarted opens a new round and names the sides.
type RoundStarted struct {
	RoundNumber     int
	AttackingTeamID string
	DefendingTeamID string
}

// SnapshotPlayer is one player's entry in a periodic state dump.
type SnapshotPlayer struct {
	PlayerID       string
	Alive          bool
	EquippedItemID string // only meaningful when Alive
}

// Snapshot is a periodic full-roster state dump.
type Snapshot struct {
	Players []SnapshotPlayer
}

// PlayerDied records an elimination.
type PlayerDied struct {
	KillerID     string
	DeceasedID   string
	WeaponID     string // optional
	AbilitySlot  string // optional, set when the kill came from an ability
	AssistantIDs []string
}

// Damage records a damage instance. It never changes alive state.
type Damage struct {
	CauserID    string
	VictimID    string
	Amount      float64
	AbilitySlot string // optional
}

// AbilityUsed records an ability activation.
type AbilityUsed struct {
	PlayerID        string
	AbilitySlot     string
	ChargesConsumed int
}

// RoundDecided closes the current round.
type RoundDecided struct {
	WinningTeamID string
}

func (*Configuration) Kind() Kind { return KindConfiguration }
func (*RoundStarted) Kind() Kind  { return KindRoundStarted }
func (*Snapshot) Kind() Kind      { return KindSnapshot }
func (*PlayerDied) Kind() Kind    { return KindPlayerDied }
func (*Damage) Kind() Kind        { return KindDamage }
func (*AbilityUsed) Kind() Kind   { return KindAbilityUsed }
func (*RoundDecided) Kind() Kind  { return KindRoundDecided }

func (*Configuration) event() {}
func (*RoundStarted) event()  {}
func (*Snapshot) event()      {}
func (*PlayerDied) event()    {}
func (*Damage) event()        {}
func (*AbilityUsed) event()   {}
func (*RoundDecided) event()  {}
