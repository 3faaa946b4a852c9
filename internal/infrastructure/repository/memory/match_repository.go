package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
)

// MatchRepository keeps matches and their ledger behind one lock so Commit
// is atomic. Events exposes the ledger read side.
type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	events  map[string]matchevent.Event
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		matches: make(map[string]match.Match),
		events:  make(map[string]matchevent.Event),
	}
}

func (r *MatchRepository) CreateBatch(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range matches {
		if _, exists := r.matches[m.ID]; exists {
			return fmt.Errorf("match %s already exists", m.ID)
		}
	}
	for _, m := range matches {
		m.Version = 1
		r.matches[m.ID] = cloneMatch(m)
	}
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	return r.ListBySeasons(ctx, []string{seasonID})
}

func (r *MatchRepository) ListBySeasons(_ context.Context, seasonIDs []string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scope := make(map[string]struct{}, len(seasonIDs))
	for _, id := range seasonIDs {
		scope[id] = struct{}{}
	}

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if _, ok := scope[m.SeasonID]; ok {
			out = append(out, cloneMatch(m))
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) Commit(_ context.Context, m match.Match, mut match.Mutation) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.matches[m.ID]
	if !ok {
		return match.Match{}, errNotFound("match", m.ID)
	}
	if stored.Version != m.Version {
		return match.Match{}, fmt.Errorf("%w: match=%s stored=%d given=%d", match.ErrStaleVersion, m.ID, stored.Version, m.Version)
	}

	if mut.ClearEvents {
		for id, e := range r.events {
			if e.MatchID == m.ID {
				delete(r.events, id)
			}
		}
	}
	for _, id := range mut.Remove {
		delete(r.events, id)
	}
	for _, e := range mut.Append {
		r.events[e.ID] = e
	}

	m.Version = stored.Version + 1
	r.matches[m.ID] = cloneMatch(m)
	return cloneMatch(m), nil
}

func (r *MatchRepository) DeleteBySeason(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.matches {
		if m.SeasonID == seasonID {
			delete(r.matches, id)
		}
	}
	for id, e := range r.events {
		if e.SeasonID == seasonID {
			delete(r.events, id)
		}
	}
	return nil
}

// Events returns the ledger view of the store.
func (r *MatchRepository) Events() *EventRepository {
	return &EventRepository{store: r}
}

type EventRepository struct {
	store *MatchRepository
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (matchevent.Event, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.events[eventID]
	return e, ok, nil
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]matchevent.Event, 0)
	for _, e := range r.store.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	return matchevent.Select(out, matchevent.Filter{}), nil
}

func (r *EventRepository) List(_ context.Context, filter matchevent.Filter) ([]matchevent.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]matchevent.Event, 0, len(r.store.events))
	for _, e := range r.store.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return matchevent.Select(all, filter), nil
}

func (r *EventRepository) ExistingIDs(_ context.Context, eventIDs []string) (map[string]struct{}, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		if _, ok := r.store.events[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Details.Gameday != items[j].Details.Gameday {
			return items[i].Details.Gameday < items[j].Details.Gameday
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

func cloneMatch(m match.Match) match.Match {
	m.Home.Players = append([]match.RosterEntry(nil), m.Home.Players...)
	m.Away.Players = append([]match.RosterEntry(nil), m.Away.Players...)
	m.FirstHalfStartedAt = cloneTime(m.FirstHalfStartedAt)
	m.FirstHalfEndedAt = cloneTime(m.FirstHalfEndedAt)
	m.SecondHalfStartedAt = cloneTime(m.SecondHalfStartedAt)
	m.SecondHalfEndedAt = cloneTime(m.SecondHalfEndedAt)
	return m
}
