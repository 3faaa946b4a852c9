package matchevent

import "context"

// Repository is the read side of the ledger. Writes go through
// match.Repository.Commit so the match and its events change together.
type Repository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	List(ctx context.Context, filter Filter) ([]Event, error)
	// ExistingIDs returns the subset of eventIDs still present in the ledger.
	ExistingIDs(ctx context.Context, eventIDs []string) (map[string]struct{}, error)
}
