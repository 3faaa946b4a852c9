package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	// UpdatePoints overwrites the points projection for every given team id.
	UpdatePoints(ctx context.Context, points map[string]int) error
	// IncrementCancellations atomically bumps the counter unless it already
	// sits at MaxCancellations, in which case ErrCancellationCapExceeded is
	// returned and nothing changes. The new count is returned.
	IncrementCancellations(ctx context.Context, teamID string) (int, error)
	DecrementCancellations(ctx context.Context, teamID string) error
	// SetCancellations overwrites the counter for every given team id, used
	// when another season becomes primary.
	SetCancellations(ctx context.Context, counts map[string]int) error
	ResetCancellations(ctx context.Context, leagueID string) error
}
