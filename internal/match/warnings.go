package match

import (
	"fmt"

	"scoreworker/internal/events"
)

// WarningKind classifies a recoverable problem found while applying an event.
type WarningKind int

const (
	// UnknownReference: an agent, ability or weapon id missing from the
	// reference tables. A neutral default was used instead.
	UnknownReference WarningKind = iota
	// OrphanEventReference: an event named a player or team not in the roster.
	OrphanEventReference
	// OutOfOrder: an event arrived in a state where it cannot apply.
	OutOfOrder
	// SkippedRecord: a record that carried no usable event.
	SkippedRecord
)

func (k WarningKind) String() string {
	switch k {
	case UnknownReference:
		return "UnknownReference"
	case OrphanEventReference:
		return "OrphanEventReference"
	case OutOfOrder:
		return "OutOfOrder"
	default:
		return "SkippedRecord"
	}
}

// Warning is a non-fatal problem tied to one event.
type Warning struct {
	Kind   WarningKind
	Event  events.Kind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s on %s: %s", w.Kind, w.Event, w.Detail)
}

func (s *State) warn(kind WarningKind, ev events.Kind, format string, args ...any) {
	s.pending = append(s.pending, Warning{Kind: kind, Event: ev, Detail: fmt.Sprintf(format, args...)})
}

// warnOnce reports a reference problem the first time key is seen in the
// match. Snapshots repeat the same ids many times per round.
func (s *State) warnOnce(key string, kind WarningKind, ev events.Kind, format string, args ...any) {
	if s.reported[key] {
		return
	}
	s.reported[key] = true
	s.warn(kind, ev, format, args...)
}
