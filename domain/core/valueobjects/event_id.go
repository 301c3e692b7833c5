package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// EventID is a value object identifying a journal event.
// Value objects are immutable and have no identity beyond their value.
type EventID struct {
	value string
}

// NewEventID creates a new random EventID
func NewEventID() EventID {
	return EventID{value: uuid.New().String()}
}

// NewEventIDFromString creates an EventID from an existing string
func NewEventIDFromString(id string) (EventID, error) {
	if id == "" {
		return EventID{}, errors.New("event ID cannot be empty")
	}
	if !isValidUUID(id) {
		return EventID{}, errors.New("event ID must be a valid UUID")
	}
	return EventID{value: id}, nil
}

// String returns the string representation of the EventID
func (id EventID) String() string {
	return id.value
}

// Equals checks if two EventIDs are equal
func (id EventID) Equals(other EventID) bool {
	return id.value == other.value
}

// IsZero checks if the EventID is the zero value
func (id EventID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id EventID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *EventID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("EventID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
