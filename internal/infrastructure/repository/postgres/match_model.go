package postgres

import (
	"database/sql"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
)

type matchTableModel struct {
	ID                  int64        `db:"id"`
	PublicID            string       `db:"public_id"`
	SeasonID            string       `db:"season_public_id"`
	HomeTeamID          string       `db:"home_team_public_id"`
	AwayTeamID          string       `db:"away_team_public_id"`
	RefereeID           string       `db:"referee_id"`
	Gameday             int          `db:"gameday"`
	KickoffAt           time.Time    `db:"kickoff_at"`
	Venue               string       `db:"venue"`
	HomeSheet           []byte       `db:"home_sheet"`
	AwaySheet           []byte       `db:"away_sheet"`
	HomeScore           int          `db:"home_score"`
	AwayScore           int          `db:"away_score"`
	Status              string       `db:"status"`
	FirstHalfStartedAt  sql.NullTime `db:"first_half_started_at"`
	FirstHalfEndedAt    sql.NullTime `db:"first_half_ended_at"`
	SecondHalfStartedAt sql.NullTime `db:"second_half_started_at"`
	SecondHalfEndedAt   sql.NullTime `db:"second_half_ended_at"`
	Report              string       `db:"report"`
	Paid                bool         `db:"paid"`
	Version             int          `db:"version"`
	CreatedAt           time.Time    `db:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at"`
}

// rosterSheetDocument is the JSONB shape of a roster sheet column.
type rosterSheetDocument struct {
	Name    string                `json:"name"`
	Kit     string                `json:"kit,omitempty"`
	Coach   string                `json:"coach,omitempty"`
	Players []rosterEntryDocument `json:"players"`
}

type rosterEntryDocument struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name,omitempty"`
	Number    int    `json:"number"`
	Yellow    int    `json:"yellow,omitempty"`
	Red       int    `json:"red,omitempty"`
	YellowRed int    `json:"yellow_red,omitempty"`
}

func encodeSheet(sheet match.RosterSheet) (string, error) {
	doc := rosterSheetDocument{
		Name:    sheet.Name,
		Kit:     sheet.Kit,
		Coach:   sheet.Coach,
		Players: make([]rosterEntryDocument, 0, len(sheet.Players)),
	}
	for _, p := range sheet.Players {
		doc.Players = append(doc.Players, rosterEntryDocument(p))
	}

	raw, err := sonic.Marshal(doc)
	if err != nil {
		return "", crerr.Wrap(err, "encode roster sheet")
	}
	return string(raw), nil
}

func decodeSheet(raw []byte) (match.RosterSheet, error) {
	if len(raw) == 0 {
		return match.RosterSheet{}, nil
	}

	var doc rosterSheetDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return match.RosterSheet{}, crerr.Wrap(err, "decode roster sheet")
	}

	sheet := match.RosterSheet{Name: doc.Name, Kit: doc.Kit, Coach: doc.Coach}
	for _, p := range doc.Players {
		sheet.Players = append(sheet.Players, match.RosterEntry(p))
	}
	return sheet, nil
}

func (row matchTableModel) toDomain() (match.Match, error) {
	home, err := decodeSheet(row.HomeSheet)
	if err != nil {
		return match.Match{}, crerr.Wrapf(err, "match %s home sheet", row.PublicID)
	}
	away, err := decodeSheet(row.AwaySheet)
	if err != nil {
		return match.Match{}, crerr.Wrapf(err, "match %s away sheet", row.PublicID)
	}

	return match.Match{
		ID:                  row.PublicID,
		SeasonID:            row.SeasonID,
		HomeTeamID:          row.HomeTeamID,
		AwayTeamID:          row.AwayTeamID,
		RefereeID:           row.RefereeID,
		Details:             match.Details{Gameday: row.Gameday, Date: row.KickoffAt.UTC(), Venue: row.Venue},
		Home:                home,
		Away:                away,
		Score:               match.Score{Home: row.HomeScore, Away: row.AwayScore},
		Status:              match.Status(row.Status),
		FirstHalfStartedAt:  nullTimeToPtr(row.FirstHalfStartedAt),
		FirstHalfEndedAt:    nullTimeToPtr(row.FirstHalfEndedAt),
		SecondHalfStartedAt: nullTimeToPtr(row.SecondHalfStartedAt),
		SecondHalfEndedAt:   nullTimeToPtr(row.SecondHalfEndedAt),
		Report:              row.Report,
		Paid:                row.Paid,
		Version:             row.Version,
		CreatedAt:           row.CreatedAt.UTC(),
		UpdatedAt:           row.UpdatedAt.UTC(),
	}, nil
}

type matchEventTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	MatchID     string    `db:"match_public_id"`
	SeasonID    string    `db:"season_public_id"`
	PlayerID    string    `db:"player_public_id"`
	TeamID      string    `db:"team_public_id"`
	EventType   string    `db:"event_type"`
	Minute      int       `db:"minute"`
	Side        string    `db:"side"`
	OwnGoal     bool      `db:"own_goal"`
	PlayerName  string    `db:"player_name"`
	ShirtNumber int       `db:"shirt_number"`
	ImageURL    string    `db:"image_url"`
	OccurredAt  time.Time `db:"occurred_at"`
}

func (row matchEventTableModel) toDomain() matchevent.Event {
	return matchevent.Event{
		ID:       row.PublicID,
		MatchID:  row.MatchID,
		SeasonID: row.SeasonID,
		PlayerID: row.PlayerID,
		TeamID:   row.TeamID,
		Type:     matchevent.Type(row.EventType),
		Minute:   row.Minute,
		Side:     matchevent.Side(row.Side),
		OwnGoal:  row.OwnGoal,
		Snapshot: matchevent.Snapshot{
			PlayerName: row.PlayerName,
			Number:     row.ShirtNumber,
			ImageURL:   row.ImageURL,
		},
		OccurredAt: row.OccurredAt.UTC(),
	}
}

var matchEventInsertColumns = []string{
	"public_id",
	"match_public_id",
	"season_public_id",
	"player_public_id",
	"team_public_id",
	"event_type",
	"minute",
	"side",
	"own_goal",
	"player_name",
	"shirt_number",
	"image_url",
	"occurred_at",
}

func matchEventInsertValues(e matchevent.Event) []any {
	return []any{
		e.ID,
		e.MatchID,
		e.SeasonID,
		e.PlayerID,
		e.TeamID,
		string(e.Type),
		e.Minute,
		string(e.Side),
		e.OwnGoal,
		e.Snapshot.PlayerName,
		e.Snapshot.Number,
		e.Snapshot.ImageURL,
		e.OccurredAt.UTC(),
	}
}
