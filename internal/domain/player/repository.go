package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	ListSuspended(ctx context.Context, leagueID string) ([]Player, error)
	// UpdateEligibility persists eligibility, block date and the triggering
	// event reference only.
	UpdateEligibility(ctx context.Context, p Player) error
}
