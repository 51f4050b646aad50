package entity

import (
	"fmt"
	"strings"
)

// Status is the mastery tier of a sentence. Tiers are ordered red < yellow < green.
type Status string

const (
	StatusRed    Status = "red"
	StatusYellow Status = "yellow"
	StatusGreen  Status = "green"
)

// Statuses lists every known tier in ascending mastery order.
var Statuses = []Status{StatusRed, StatusYellow, StatusGreen}

// Valid reports whether s is one of the known tiers.
func (s Status) Valid() bool {
	switch s {
	case StatusRed, StatusYellow, StatusGreen:
		return true
	default:
		return false
	}
}

// Rank returns the tier's position in mastery order, or -1 for unknown values.
func (s Status) Rank() int {
	switch s {
	case StatusRed:
		return 0
	case StatusYellow:
		return 1
	case StatusGreen:
		return 2
	default:
		return -1
	}
}

func (s Status) String() string { return string(s) }

// ParseStatus converts user or storage input into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSentenceStatus, raw)
	}
	return status, nil
}

// UnmarshalText rejects unknown tiers so malformed records never reach the scheduler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}
