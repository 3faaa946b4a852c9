package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	qb "github.com/riskibarqy/amateur-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	return r.list(ctx, "select teams by league",
		qb.Eq("league_public_id", leagueID),
		qb.IsNull("deleted_at"),
	)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return []team.Team{}, nil
	}
	return r.list(ctx, "select teams by ids",
		qb.InStrings("public_id", teamIDs),
		qb.IsNull("deleted_at"),
	)
}

// UpdatePoints overwrites the points projection for all given teams in one
// transaction. Teams are updated in id order to keep lock order stable.
func (r *TeamRepository) UpdatePoints(ctx context.Context, points map[string]int) error {
	return r.overwrite(ctx, "points", points)
}

func (r *TeamRepository) SetCancellations(ctx context.Context, counts map[string]int) error {
	clamped := make(map[string]int, len(counts))
	for teamID, count := range counts {
		clamped[teamID] = min(max(count, 0), team.MaxCancellations)
	}
	return r.overwrite(ctx, "cancellations", clamped)
}

func (r *TeamRepository) overwrite(ctx context.Context, column string, values map[string]int) error {
	if len(values) == 0 {
		return nil
	}

	teamIDs := make([]string, 0, len(values))
	for teamID := range values {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team %s: %w", column, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, teamID := range teamIDs {
		query, args, err := qb.Update("teams").
			Set(column, values[teamID]).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", teamID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update team %s query: %w", column, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update team %s team=%s: %w", column, teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team %s tx: %w", column, err)
	}
	return nil
}

// IncrementCancellations bumps the counter unless the team is at the cap.
// The guard lives in the WHERE clause so concurrent cancellations cannot
// overshoot.
func (r *TeamRepository) IncrementCancellations(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Update("teams").
		SetExpr("cancellations", "cancellations + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.Lt("cancellations", team.MaxCancellations),
		).
		Suffix("RETURNING cancellations").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build increment cancellations query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		if !isNotFound(err) {
			return 0, fmt.Errorf("increment cancellations: %w", err)
		}
		current, exists, getErr := r.GetByID(ctx, teamID)
		if getErr != nil {
			return 0, getErr
		}
		if !exists {
			return 0, fmt.Errorf("team %s not found", teamID)
		}
		return current.Cancellations, fmt.Errorf("%w: team=%s", team.ErrCancellationCapExceeded, teamID)
	}
	return count, nil
}

func (r *TeamRepository) DecrementCancellations(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("teams").
		SetExpr("cancellations", "GREATEST(cancellations - 1, 0)").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build decrement cancellations query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("decrement cancellations: %w", err)
	}
	return nil
}

func (r *TeamRepository) ResetCancellations(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("teams").
		Set("cancellations", 0).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset cancellations query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset cancellations: %w", err)
	}
	return nil
}

func (r *TeamRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
