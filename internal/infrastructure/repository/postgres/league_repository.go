package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	qb "github.com/riskibarqy/amateur-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return row.toDomain(), true, nil
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, season league.Season) error {
	if err := season.Validate(); err != nil {
		return fmt.Errorf("validate season: %w", err)
	}

	query, args, err := qb.InsertInto("seasons").
		Columns("public_id", "league_public_id", "name", "is_primary", "created_at").
		Values(season.ID, season.LeagueID, season.Name, false, season.CreatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("season %s already exists: %w", season.ID, err)
		}
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (league.Season, bool, error) {
	return r.getOne(ctx, "get season by id", qb.Eq("public_id", seasonID))
}

func (r *SeasonRepository) GetPrimary(ctx context.Context, leagueID string) (league.Season, bool, error) {
	return r.getOne(ctx, "get primary season", qb.Eq("league_public_id", leagueID), qb.Eq("is_primary", true))
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID string) ([]league.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons by league query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons by league: %w", err)
	}

	out := make([]league.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// SetPrimary clears the flag on every season of the league, then sets it on
// seasonID, inside one transaction.
func (r *SeasonRepository) SetPrimary(ctx context.Context, leagueID, seasonID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for set primary season: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("public_id").From("seasons").
		Where(qb.Eq("league_public_id", leagueID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock league seasons query: %w", err)
	}
	var seasonIDs []string
	if err := tx.SelectContext(ctx, &seasonIDs, lockQuery, lockArgs...); err != nil {
		return fmt.Errorf("lock league seasons: %w", err)
	}
	found := false
	for _, id := range seasonIDs {
		if id == seasonID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("season %s not found in league %s", seasonID, leagueID)
	}

	clearQuery, clearArgs, err := qb.Update("seasons").
		Set("is_primary", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("league_public_id", leagueID), qb.Eq("is_primary", true)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear primary season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear primary season: %w", err)
	}

	setQuery, setArgs, err := qb.Update("seasons").
		Set("is_primary", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set primary season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, setQuery, setArgs...); err != nil {
		return fmt.Errorf("set primary season: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set primary season tx: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	query, args, err := qb.DeleteFrom("seasons").Where(qb.Eq("public_id", seasonID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (league.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").Where(conditions...).ToSQL()
	if err != nil {
		return league.Season{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Season{}, false, nil
		}
		return league.Season{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}
