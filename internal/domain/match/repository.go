package match

import (
	"context"

	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
)

// Mutation lists the ledger changes committed together with a match.
type Mutation struct {
	Append []matchevent.Event
	Remove []string
	// ClearEvents drops every ledger entry of the match before Append.
	ClearEvents bool
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	CreateBatch(ctx context.Context, matches []Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListBySeasons(ctx context.Context, seasonIDs []string) ([]Match, error)
	// Commit stores m and applies mut atomically. It fails with
	// ErrStaleVersion when the stored version differs from m.Version and
	// returns the match with its new version on success.
	Commit(ctx context.Context, m Match, mut Mutation) (Match, error)
	// DeleteBySeason removes all matches of the season and their events.
	DeleteBySeason(ctx context.Context, seasonID string) error
}
