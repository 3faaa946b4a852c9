package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		items[l.ID] = cloneLeague(l)
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneLeague(r.items[id]))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return cloneLeague(l), true, nil
}

func cloneLeague(l league.League) league.League {
	if l.HourlyRate != nil {
		rate := *l.HourlyRate
		l.HourlyRate = &rate
	}
	return l
}

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]league.Season
}

func NewSeasonRepository(seasons []league.Season) *SeasonRepository {
	items := make(map[string]league.Season, len(seasons))
	for _, s := range seasons {
		items[s.ID] = s
	}
	return &SeasonRepository{items: items}
}

func (r *SeasonRepository) Create(_ context.Context, season league.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[season.ID] = season
	return nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (league.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	return s, ok, nil
}

func (r *SeasonRepository) ListByLeague(_ context.Context, leagueID string) ([]league.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Season, 0)
	for _, s := range r.items {
		if s.LeagueID == leagueID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SeasonRepository) GetPrimary(_ context.Context, leagueID string) (league.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.LeagueID == leagueID && s.Primary {
			return s, true, nil
		}
	}
	return league.Season{}, false, nil
}

func (r *SeasonRepository) SetPrimary(_ context.Context, leagueID, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.items[seasonID]
	if !ok || target.LeagueID != leagueID {
		return errNotFound("season", seasonID)
	}
	for id, s := range r.items {
		if s.LeagueID != leagueID {
			continue
		}
		s.Primary = id == seasonID
		r.items[id] = s
	}
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, seasonID)
	return nil
}
