package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/player"
)

type playerTableModel struct {
	ID                 int64        `db:"id"`
	PublicID           string       `db:"public_id"`
	LeagueID           string       `db:"league_public_id"`
	TeamID             string       `db:"team_public_id"`
	Name               string       `db:"name"`
	ShirtNumber        int          `db:"shirt_number"`
	ImageURL           string       `db:"image_url"`
	Eligibility        string       `db:"eligibility"`
	BlockDate          sql.NullTime `db:"block_date"`
	SuspendedByEventID string       `db:"suspended_by_event_id"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
	DeletedAt          *time.Time   `db:"deleted_at"`
}

func (row playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:                 row.PublicID,
		LeagueID:           row.LeagueID,
		TeamID:             row.TeamID,
		Name:               row.Name,
		Number:             row.ShirtNumber,
		ImageURL:           row.ImageURL,
		Eligibility:        player.Eligibility(row.Eligibility),
		BlockDate:          nullTimeToPtr(row.BlockDate),
		SuspendedByEventID: row.SuspendedByEventID,
	}
}
