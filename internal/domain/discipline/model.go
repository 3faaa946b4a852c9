package discipline

import (
	"context"
	"fmt"
	"time"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Case is a disciplinary panel file opened from a match report.
type Case struct {
	ID       string
	MatchID  string
	Report   string
	Status   Status
	OpenedAt time.Time
}

func (c Case) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("case id is required")
	}
	if c.MatchID == "" {
		return fmt.Errorf("case match id is required")
	}
	if c.Report == "" {
		return fmt.Errorf("case report is required")
	}

	return nil
}

// Repository stores disciplinary cases, at most one per match.
type Repository interface {
	GetByMatch(ctx context.Context, matchID string) (Case, bool, error)
	// Open creates c unless the match already has a case. It reports
	// whether a case was created.
	Open(ctx context.Context, c Case) (bool, error)
}
