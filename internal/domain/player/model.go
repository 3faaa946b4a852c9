package player

import (
	"fmt"
	"time"
)

// Eligibility is a player's listing status. Only the suspension policy
// moves a player into or out of Suspended.
type Eligibility string

const (
	EligibilityEligible  Eligibility = "eligible"
	EligibilityWaiting   Eligibility = "waiting"
	EligibilitySuspended Eligibility = "suspended"
)

var AllEligibilities = map[Eligibility]struct{}{
	EligibilityEligible:  {},
	EligibilityWaiting:   {},
	EligibilitySuspended: {},
}

// Player is a registered amateur player of a team.
type Player struct {
	ID          string
	LeagueID    string
	TeamID      string
	Name        string
	Number      int
	ImageURL    string
	Eligibility Eligibility
	// BlockDate is the end of the suspension window.
	BlockDate *time.Time
	// SuspendedByEventID references the card event that caused the current
	// suspension. Used to spot suspensions whose event was later deleted.
	SuspendedByEventID string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Number < 0 || p.Number > 99 {
		return fmt.Errorf("player number must be within 0..99")
	}
	if _, ok := AllEligibilities[p.Eligibility]; !ok {
		return fmt.Errorf("invalid player eligibility: %s", p.Eligibility)
	}

	return nil
}

// Blocked reports whether the player is inside an open suspension window at now.
func (p Player) Blocked(now time.Time) bool {
	if p.Eligibility != EligibilitySuspended {
		return false
	}
	if p.BlockDate == nil {
		return true
	}
	return now.Before(*p.BlockDate)
}

// Suspend returns the player suspended until blockDate by eventID.
func (p Player) Suspend(blockDate time.Time, eventID string) Player {
	p.Eligibility = EligibilitySuspended
	until := blockDate
	p.BlockDate = &until
	p.SuspendedByEventID = eventID
	return p
}
