package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/domain/discipline"
	qb "github.com/riskibarqy/amateur-league/internal/platform/querybuilder"
)

type disciplineCaseTableModel struct {
	ID       int64     `db:"id"`
	PublicID string    `db:"public_id"`
	MatchID  string    `db:"match_public_id"`
	Report   string    `db:"report"`
	Status   string    `db:"status"`
	OpenedAt time.Time `db:"opened_at"`
}

type DisciplineRepository struct {
	db *sqlx.DB
}

func NewDisciplineRepository(db *sqlx.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

func (r *DisciplineRepository) GetByMatch(ctx context.Context, matchID string) (discipline.Case, bool, error) {
	query, args, err := qb.Select("*").From("discipline_cases").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return discipline.Case{}, false, fmt.Errorf("build get discipline case query: %w", err)
	}

	var row disciplineCaseTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return discipline.Case{}, false, nil
		}
		return discipline.Case{}, false, fmt.Errorf("get discipline case: %w", err)
	}

	return discipline.Case{
		ID:       row.PublicID,
		MatchID:  row.MatchID,
		Report:   row.Report,
		Status:   discipline.Status(row.Status),
		OpenedAt: row.OpenedAt.UTC(),
	}, true, nil
}

func (r *DisciplineRepository) Open(ctx context.Context, c discipline.Case) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, fmt.Errorf("validate discipline case: %w", err)
	}
	if c.Status == "" {
		c.Status = discipline.StatusOpen
	}

	query, args, err := qb.InsertInto("discipline_cases").
		Columns("public_id", "match_public_id", "report", "status", "opened_at").
		Values(c.ID, c.MatchID, c.Report, string(c.Status), c.OpenedAt.UTC()).
		Suffix("ON CONFLICT (match_public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build insert discipline case query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert discipline case: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("discipline case rows affected: %w", err)
	}
	return n > 0, nil
}
