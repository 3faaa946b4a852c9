package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/amateur-league/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo league into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const onConflict = "ON CONFLICT (public_id) DO NOTHING"
	builders := make([]*qb.InsertBuilder, 0, 4)

	leagues := qb.InsertInto("leagues").Columns("public_id", "code", "name", "hourly_rate_cents")
	for _, l := range memory.SeedLeagues() {
		var rate any
		if l.HourlyRate != nil {
			rate = *l.HourlyRate
		}
		leagues.Values(l.ID, l.Code, l.Name, rate)
	}
	builders = append(builders, leagues.Suffix(onConflict))

	seasons := qb.InsertInto("seasons").Columns("public_id", "league_public_id", "name", "is_primary")
	for _, s := range memory.SeedSeasons() {
		seasons.Values(s.ID, s.LeagueID, s.Name, s.Primary)
	}
	builders = append(builders, seasons.Suffix(onConflict))

	teams := qb.InsertInto("teams").Columns("public_id", "league_public_id", "name", "kit", "contact_email")
	for _, t := range memory.SeedTeams() {
		teams.Values(t.ID, t.LeagueID, t.Name, t.Kit, t.ContactEmail)
	}
	builders = append(builders, teams.Suffix(onConflict))

	players := qb.InsertInto("players").Columns("public_id", "league_public_id", "team_public_id", "name", "shirt_number", "eligibility")
	for _, p := range memory.SeedPlayers() {
		players.Values(p.ID, p.LeagueID, p.TeamID, p.Name, p.Number, string(p.Eligibility))
	}
	builders = append(builders, players.Suffix(onConflict))

	for _, b := range builders {
		query, args, err := b.ToSQL()
		if err != nil {
			return fmt.Errorf("build seed query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
