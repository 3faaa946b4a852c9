package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
)

type leagueTableModel struct {
	ID              int64         `db:"id"`
	PublicID        string        `db:"public_id"`
	Code            string        `db:"code"`
	Name            string        `db:"name"`
	HourlyRateCents sql.NullInt64 `db:"hourly_rate_cents"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
	DeletedAt       *time.Time    `db:"deleted_at"`
}

func (row leagueTableModel) toDomain() league.League {
	return league.League{
		ID:         row.PublicID,
		Code:       row.Code,
		Name:       row.Name,
		HourlyRate: nullInt64ToPtr(row.HourlyRateCents),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

type seasonTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	LeagueID  string    `db:"league_public_id"`
	Name      string    `db:"name"`
	IsPrimary bool      `db:"is_primary"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row seasonTableModel) toDomain() league.Season {
	return league.Season{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		Name:      row.Name,
		Primary:   row.IsPrimary,
		CreatedAt: row.CreatedAt.UTC(),
	}
}
