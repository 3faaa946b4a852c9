package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/amateur-league/internal/domain/billing"
)

// BillingRepository records charges; a repeated charge id is ignored.
type BillingRepository struct {
	mu      sync.RWMutex
	charges []billing.Charge
	seen    map[string]struct{}
}

func NewBillingRepository() *BillingRepository {
	return &BillingRepository{seen: make(map[string]struct{})}
}

func (r *BillingRepository) Debit(_ context.Context, charge billing.Charge) error {
	if err := charge.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[charge.ID]; ok {
		return nil
	}
	r.seen[charge.ID] = struct{}{}
	r.charges = append(r.charges, charge)
	return nil
}

func (r *BillingRepository) ListByAccount(_ context.Context, accountType billing.AccountType, accountID string) ([]billing.Charge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]billing.Charge, 0)
	for _, c := range r.charges {
		if c.AccountType == accountType && c.AccountID == accountID {
			out = append(out, c)
		}
	}
	return out, nil
}
