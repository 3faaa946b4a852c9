package league

import (
	"fmt"
	"time"
)

// League is an amateur competition. It owns teams and seasons.
type League struct {
	ID   string
	Code string
	Name string
	// HourlyRate is the referee compensation in cents. Nil means no rate is
	// configured and settlement cannot proceed.
	HourlyRate *int64
	CreatedAt  time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Code == "" {
		return fmt.Errorf("league code is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.HourlyRate != nil && *l.HourlyRate < 0 {
		return fmt.Errorf("league hourly rate must be >= 0")
	}

	return nil
}

// Season groups the matches of one competition year. At most one season per
// league is primary; that invariant is kept by Repository.SetPrimary.
type Season struct {
	ID        string
	LeagueID  string
	Name      string
	Primary   bool
	CreatedAt time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("season league id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}

	return nil
}

// PrimarySeason returns the season flagged primary, if any.
func PrimarySeason(seasons []Season) (Season, bool) {
	for _, s := range seasons {
		if s.Primary {
			return s, true
		}
	}
	return Season{}, false
}
