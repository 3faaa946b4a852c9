package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	orders := make([]string, 0, len(players))
	for _, p := range players {
		items[p.ID] = clonePlayer(p)
		orders = append(orders, p.ID)
	}

	return &PlayerRepository{items: items, orders: orders}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.items[id]; ok {
			out = append(out, clonePlayer(p))
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	return r.list(func(p player.Player) bool { return p.LeagueID == leagueID }), nil
}

func (r *PlayerRepository) ListSuspended(_ context.Context, leagueID string) ([]player.Player, error) {
	return r.list(func(p player.Player) bool {
		return p.LeagueID == leagueID && p.Eligibility == player.EligibilitySuspended
	}), nil
}

func (r *PlayerRepository) UpdateEligibility(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[p.ID]
	if !ok {
		return errNotFound("player", p.ID)
	}
	current.Eligibility = p.Eligibility
	current.BlockDate = cloneTime(p.BlockDate)
	current.SuspendedByEventID = p.SuspendedByEventID
	r.items[p.ID] = current
	return nil
}

func (r *PlayerRepository) list(keep func(player.Player) bool) []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.orders {
		if p := r.items[id]; keep(p) {
			out = append(out, clonePlayer(p))
		}
	}
	return out
}

func clonePlayer(p player.Player) player.Player {
	p.BlockDate = cloneTime(p.BlockDate)
	return p
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
