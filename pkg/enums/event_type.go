package enums

import "fmt"

// EventType captures the kind of a wedding event.
type EventType string

const (
	EventTypeCeremony  EventType = "ceremony"
	EventTypeReception EventType = "reception"
	EventTypeRehearsal EventType = "rehearsal"
	EventTypeOther     EventType = "other"
)

var validEventTypes = []EventType{
	EventTypeCeremony,
	EventTypeReception,
	EventTypeRehearsal,
	EventTypeOther,
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventType.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into a EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
