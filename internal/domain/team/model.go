package team

import (
	"errors"
	"fmt"
)

// MaxCancellations is the number of team cancellations allowed per season.
const MaxCancellations = 3

var ErrCancellationCapExceeded = errors.New("team cancellation cap exceeded")

// Team is a club registered in one league.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Kit      string
	// ContactEmail receives out-of-band notices such as opponent cancellations.
	ContactEmail string
	// Points is a projection of counted match history, see leaguestanding.Calculate.
	Points        int
	Cancellations int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Cancellations < 0 || t.Cancellations > MaxCancellations {
		return fmt.Errorf("team cancellations must be within 0..%d", MaxCancellations)
	}

	return nil
}

// CanCancel reports whether another cancellation fits under the cap.
func (t Team) CanCancel() bool {
	return t.Cancellations < MaxCancellations
}

// CancellationPenalty returns the charge in cents for the nth cancellation
// (1-based): 170, 270 and 370 currency units.
func CancellationPenalty(nth int) (int64, error) {
	if nth < 1 || nth > MaxCancellations {
		return 0, fmt.Errorf("%w: cancellation=%d", ErrCancellationCapExceeded, nth)
	}
	return int64(7000 + 10000*nth), nil
}
