package billing

import "context"

// Repository records debit instructions. Balances are owned by the invoicing
// system that consumes them.
type Repository interface {
	Debit(ctx context.Context, charge Charge) error
	ListByAccount(ctx context.Context, accountType AccountType, accountID string) ([]Charge, error)
}
