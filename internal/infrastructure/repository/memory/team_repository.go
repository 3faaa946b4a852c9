package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[string]team.Team
	orders []string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	orders := make([]string, 0, len(teams))
	for _, t := range teams {
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &TeamRepository{items: items, orders: orders}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range r.orders {
		if t := r.items[id]; t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if t, ok := r.items[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TeamRepository) UpdatePoints(_ context.Context, points map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range points {
		t, ok := r.items[id]
		if !ok {
			continue
		}
		t.Points = p
		r.items[id] = t
	}
	return nil
}

func (r *TeamRepository) IncrementCancellations(_ context.Context, teamID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return 0, errNotFound("team", teamID)
	}
	if !t.CanCancel() {
		return t.Cancellations, fmt.Errorf("%w: team=%s", team.ErrCancellationCapExceeded, teamID)
	}
	t.Cancellations++
	r.items[teamID] = t
	return t.Cancellations, nil
}

func (r *TeamRepository) DecrementCancellations(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return errNotFound("team", teamID)
	}
	if t.Cancellations > 0 {
		t.Cancellations--
		r.items[teamID] = t
	}
	return nil
}

func (r *TeamRepository) SetCancellations(_ context.Context, counts map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, count := range counts {
		t, ok := r.items[id]
		if !ok {
			continue
		}
		t.Cancellations = min(max(count, 0), team.MaxCancellations)
		r.items[id] = t
	}
	return nil
}

func (r *TeamRepository) ResetCancellations(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.items {
		if t.LeagueID == leagueID {
			t.Cancellations = 0
			r.items[id] = t
		}
	}
	return nil
}
