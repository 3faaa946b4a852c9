package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
}

// SeasonRepository stores seasons and owns the single-primary invariant.
type SeasonRepository interface {
	Create(ctx context.Context, season Season) error
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Season, error)
	// GetPrimary returns the league's primary season.
	GetPrimary(ctx context.Context, leagueID string) (Season, bool, error)
	// SetPrimary clears the primary flag on every season of the league and
	// then sets it on seasonID, atomically.
	SetPrimary(ctx context.Context, leagueID, seasonID string) error
	Delete(ctx context.Context, seasonID string) error
}
