package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	qb "github.com/riskibarqy/amateur-league/internal/platform/querybuilder"
)

// MatchRepository persists matches together with their ledger. Commit writes
// the match row and its event changes in one transaction guarded by the
// match version.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) CreateBatch(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	builder := qb.InsertInto("matches").Columns(
		"public_id",
		"season_public_id",
		"home_team_public_id",
		"away_team_public_id",
		"referee_id",
		"gameday",
		"kickoff_at",
		"venue",
		"home_sheet",
		"away_sheet",
		"status",
		"version",
		"created_at",
		"updated_at",
	)
	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return crerr.Wrapf(err, "validate match %s", m.ID)
		}
		home, err := encodeSheet(m.Home)
		if err != nil {
			return err
		}
		away, err := encodeSheet(m.Away)
		if err != nil {
			return err
		}
		builder.Values(
			m.ID,
			m.SeasonID,
			m.HomeTeamID,
			m.AwayTeamID,
			m.RefereeID,
			m.Details.Gameday,
			m.Details.Date.UTC(),
			m.Details.Venue,
			home,
			away,
			string(m.Status),
			1,
			m.CreatedAt.UTC(),
			m.UpdatedAt.UTC(),
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	m, err := row.toDomain()
	if err != nil {
		return match.Match{}, false, err
	}
	return m, true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	return r.ListBySeasons(ctx, []string{seasonID})
}

func (r *MatchRepository) ListBySeasons(ctx context.Context, seasonIDs []string) ([]match.Match, error) {
	if len(seasonIDs) == 0 {
		return []match.Match{}, nil
	}

	query, args, err := qb.Select("*").From("matches").
		Where(qb.InStrings("season_public_id", seasonIDs)).
		OrderBy("gameday", "kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by seasons query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by seasons: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Commit stores m if its version still matches the stored row, applies the
// ledger mutation and returns m with the bumped version.
func (r *MatchRepository) Commit(ctx context.Context, m match.Match, mut match.Mutation) (match.Match, error) {
	home, err := encodeSheet(m.Home)
	if err != nil {
		return match.Match{}, err
	}
	away, err := encodeSheet(m.Away)
	if err != nil {
		return match.Match{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx for match commit: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("matches").
		Set("referee_id", m.RefereeID).
		Set("gameday", m.Details.Gameday).
		Set("kickoff_at", m.Details.Date.UTC()).
		Set("venue", m.Details.Venue).
		Set("home_sheet", home).
		Set("away_sheet", away).
		Set("home_score", m.Score.Home).
		Set("away_score", m.Score.Away).
		Set("status", string(m.Status)).
		Set("first_half_started_at", nullableTime(m.FirstHalfStartedAt)).
		Set("first_half_ended_at", nullableTime(m.FirstHalfEndedAt)).
		Set("second_half_started_at", nullableTime(m.SecondHalfStartedAt)).
		Set("second_half_ended_at", nullableTime(m.SecondHalfEndedAt)).
		Set("report", m.Report).
		Set("paid", m.Paid).
		SetExpr("version", "version + 1").
		Set("updated_at", m.UpdatedAt.UTC()).
		Where(
			qb.Eq("public_id", m.ID),
			qb.Eq("version", m.Version),
		).
		Suffix("RETURNING version").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match query: %w", err)
	}

	var version int
	if err := tx.GetContext(ctx, &version, updateQuery, updateArgs...); err != nil {
		if !isNotFound(err) {
			return match.Match{}, fmt.Errorf("update match: %w", err)
		}
		return match.Match{}, r.staleOrMissing(ctx, tx, m)
	}

	if mut.ClearEvents {
		if err := deleteEvents(ctx, tx, qb.Eq("match_public_id", m.ID)); err != nil {
			return match.Match{}, err
		}
	}
	if len(mut.Remove) > 0 {
		if err := deleteEvents(ctx, tx, qb.Eq("match_public_id", m.ID), qb.InStrings("public_id", mut.Remove)); err != nil {
			return match.Match{}, err
		}
	}
	if len(mut.Append) > 0 {
		builder := qb.InsertInto("match_events").Columns(matchEventInsertColumns...)
		for _, e := range mut.Append {
			builder.Values(matchEventInsertValues(e)...)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return match.Match{}, fmt.Errorf("build insert match events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return match.Match{}, fmt.Errorf("insert match events: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit match tx: %w", err)
	}

	m.Version = version
	return m, nil
}

func (r *MatchRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for season matches delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteEvents(ctx, tx, qb.Eq("season_public_id", seasonID)); err != nil {
		return err
	}

	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("season_public_id", seasonID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches by season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches by season: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit season matches delete tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) staleOrMissing(ctx context.Context, tx *sqlx.Tx, m match.Match) error {
	query, args, err := qb.Select("version").From("matches").Where(qb.Eq("public_id", m.ID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build get match version query: %w", err)
	}

	var stored int
	if err := tx.GetContext(ctx, &stored, query, args...); err != nil {
		if isNotFound(err) {
			return crerr.Newf("match %s not found", m.ID)
		}
		return fmt.Errorf("get match version: %w", err)
	}
	return crerr.Wrapf(match.ErrStaleVersion, "match=%s stored=%d given=%d", m.ID, stored, m.Version)
}

func deleteEvents(ctx context.Context, tx *sqlx.Tx, conditions ...qb.Condition) error {
	query, args, err := qb.DeleteFrom("match_events").Where(conditions...).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match events: %w", err)
	}
	return nil
}

// EventRepository is the read side of the ledger.
type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (matchevent.Event, bool, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return matchevent.Event{}, false, fmt.Errorf("build get match event query: %w", err)
	}

	var row matchEventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchevent.Event{}, false, nil
		}
		return matchevent.Event{}, false, fmt.Errorf("get match event: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	return r.list(ctx, "select match events by match", qb.Eq("match_public_id", matchID))
}

// List applies filter in SQL. A nil id slice leaves that dimension open and
// an empty one matches nothing.
func (r *EventRepository) List(ctx context.Context, filter matchevent.Filter) ([]matchevent.Event, error) {
	conditions := make([]qb.Condition, 0, 5)
	if filter.Type != "" {
		conditions = append(conditions, qb.Eq("event_type", string(filter.Type)))
	}
	if filter.SeasonIDs != nil {
		conditions = append(conditions, qb.InStrings("season_public_id", filter.SeasonIDs))
	}
	if filter.PlayerIDs != nil {
		conditions = append(conditions, qb.InStrings("player_public_id", filter.PlayerIDs))
	}
	if filter.From != nil {
		conditions = append(conditions, qb.Gte("occurred_at", filter.From.UTC()))
	}
	if filter.To != nil {
		conditions = append(conditions, qb.Lt("occurred_at", filter.To.UTC()))
	}
	return r.list(ctx, "select match events", conditions...)
}

func (r *EventRepository) ExistingIDs(ctx context.Context, eventIDs []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("public_id").From("match_events").
		Where(qb.InStrings("public_id", eventIDs)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select existing event ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select existing event ids: %w", err)
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *EventRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]matchevent.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(conditions...).
		OrderBy("occurred_at", "minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
