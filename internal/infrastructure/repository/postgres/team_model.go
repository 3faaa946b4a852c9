package postgres

import (
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

type teamTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	LeagueID      string     `db:"league_public_id"`
	Name          string     `db:"name"`
	Kit           string     `db:"kit"`
	ContactEmail  string     `db:"contact_email"`
	Points        int        `db:"points"`
	Cancellations int        `db:"cancellations"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (row teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:            row.PublicID,
		LeagueID:      row.LeagueID,
		Name:          row.Name,
		Kit:           row.Kit,
		ContactEmail:  row.ContactEmail,
		Points:        row.Points,
		Cancellations: row.Cancellations,
	}
}
