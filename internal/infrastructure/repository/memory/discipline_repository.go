package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/amateur-league/internal/domain/discipline"
)

type DisciplineRepository struct {
	mu      sync.RWMutex
	byMatch map[string]discipline.Case
}

func NewDisciplineRepository() *DisciplineRepository {
	return &DisciplineRepository{byMatch: make(map[string]discipline.Case)}
}

func (r *DisciplineRepository) GetByMatch(_ context.Context, matchID string) (discipline.Case, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byMatch[matchID]
	return c, ok, nil
}

func (r *DisciplineRepository) Open(_ context.Context, c discipline.Case) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byMatch[c.MatchID]; ok {
		return false, nil
	}
	r.byMatch[c.MatchID] = c
	return true, nil
}
