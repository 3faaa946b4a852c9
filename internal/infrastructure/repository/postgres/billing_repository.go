package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/domain/billing"
	qb "github.com/riskibarqy/amateur-league/internal/platform/querybuilder"
)

type billingChargeTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	AccountType string    `db:"account_type"`
	AccountID   string    `db:"account_id"`
	Kind        string    `db:"kind"`
	AmountCents int64     `db:"amount_cents"`
	MatchID     string    `db:"match_public_id"`
	Note        string    `db:"note"`
	CreatedAt   time.Time `db:"created_at"`
}

type BillingRepository struct {
	db *sqlx.DB
}

func NewBillingRepository(db *sqlx.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// Debit records charge once; replaying the same charge id is a no-op.
func (r *BillingRepository) Debit(ctx context.Context, charge billing.Charge) error {
	if err := charge.Validate(); err != nil {
		return fmt.Errorf("validate charge: %w", err)
	}

	query, args, err := qb.InsertInto("billing_charges").
		Columns("public_id", "account_type", "account_id", "kind", "amount_cents", "match_public_id", "note", "created_at").
		Values(
			charge.ID,
			string(charge.AccountType),
			charge.AccountID,
			string(charge.Kind),
			charge.AmountCents,
			charge.MatchID,
			charge.Note,
			charge.CreatedAt.UTC(),
		).
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert charge query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert charge: %w", err)
	}
	return nil
}

func (r *BillingRepository) ListByAccount(ctx context.Context, accountType billing.AccountType, accountID string) ([]billing.Charge, error) {
	query, args, err := qb.Select("*").From("billing_charges").
		Where(
			qb.Eq("account_type", string(accountType)),
			qb.Eq("account_id", accountID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select charges by account query: %w", err)
	}

	var rows []billingChargeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select charges by account: %w", err)
	}

	out := make([]billing.Charge, 0, len(rows))
	for _, row := range rows {
		out = append(out, billing.Charge{
			ID:          row.PublicID,
			AccountType: billing.AccountType(row.AccountType),
			AccountID:   row.AccountID,
			Kind:        billing.Kind(row.Kind),
			AmountCents: row.AmountCents,
			MatchID:     row.MatchID,
			Note:        row.Note,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return out, nil
}
