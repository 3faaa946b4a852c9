package matchevent

import (
	"fmt"
	"strings"
	"time"
)

// Type is the kind of ledger entry.
type Type string

const (
	TypeGoal      Type = "goal"
	TypeYellow    Type = "yellow"
	TypeRed       Type = "red"
	TypeYellowRed Type = "yellowred"
)

var AllTypes = map[Type]struct{}{
	TypeGoal:      {},
	TypeYellow:    {},
	TypeRed:       {},
	TypeYellowRed: {},
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := AllTypes[t]; !ok {
		return "", fmt.Errorf("invalid event type: %q", raw)
	}
	return t, nil
}

// IsCard reports whether the type is one of the disciplinary cards.
func (t Type) IsCard() bool {
	return t == TypeYellow || t == TypeRed || t == TypeYellowRed
}

// Side is the home or away half of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func ParseSide(raw string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(raw))) {
	case SideHome:
		return SideHome, nil
	case SideAway:
		return SideAway, nil
	default:
		return "", fmt.Errorf("invalid side: %q", raw)
	}
}

func (s Side) Opposite() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Snapshot freezes the player's display data at the time of the event.
type Snapshot struct {
	PlayerName string
	Number     int
	ImageURL   string
}

// Event is one immutable ledger entry. It is only ever appended or deleted.
type Event struct {
	ID         string
	MatchID    string
	SeasonID   string
	PlayerID   string
	TeamID     string
	Type       Type
	Minute     int
	Side       Side
	OwnGoal    bool
	Snapshot   Snapshot
	OccurredAt time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.MatchID == "" {
		return fmt.Errorf("event match id is required")
	}
	if e.SeasonID == "" {
		return fmt.Errorf("event season id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("event player id is required")
	}
	if _, ok := AllTypes[e.Type]; !ok {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Minute < 0 || e.Minute > 130 {
		return fmt.Errorf("event minute must be within 0..130")
	}
	if e.Side != "" && e.Side != SideHome && e.Side != SideAway {
		return fmt.Errorf("invalid event side: %s", e.Side)
	}
	if e.Type == TypeGoal && e.Side == "" {
		return fmt.Errorf("goal event requires a side")
	}
	if e.OwnGoal && e.Type != TypeGoal {
		return fmt.Errorf("own goal flag is only valid on goals")
	}

	return nil
}

// Filter scopes a ledger query. Nil slices mean no restriction; an empty
// non-nil slice matches nothing.
type Filter struct {
	Type      Type
	SeasonIDs []string
	PlayerIDs []string
	From      *time.Time
	To        *time.Time
}

// Matches applies the filter to a single event.
func (f Filter) Matches(e Event) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.SeasonIDs != nil && !contains(f.SeasonIDs, e.SeasonID) {
		return false
	}
	if f.PlayerIDs != nil && !contains(f.PlayerIDs, e.PlayerID) {
		return false
	}
	if f.From != nil && e.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.OccurredAt.Before(*f.To) {
		return false
	}
	return true
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
