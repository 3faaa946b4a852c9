package httpapi

import (
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/leaderboard"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/riskibarqy/amateur-league/internal/usecase"
)

type leagueDTO struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	HourlyRateCents *int64 `json:"hourly_rate_cents,omitempty"`
}

type seasonDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"league_id"`
	Name      string `json:"name"`
	Primary   bool   `json:"primary"`
	CreatedAt string `json:"created_at"`
}

type teamDTO struct {
	ID            string `json:"id"`
	LeagueID      string `json:"league_id"`
	Name          string `json:"name"`
	Kit           string `json:"kit,omitempty"`
	Points        int    `json:"points"`
	Cancellations int    `json:"cancellations"`
}

type playerDTO struct {
	ID          string  `json:"id"`
	LeagueID    string  `json:"league_id"`
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	Number      int     `json:"number"`
	ImageURL    string  `json:"image_url,omitempty"`
	Eligibility string  `json:"eligibility"`
	BlockDate   *string `json:"block_date,omitempty"`
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type rosterEntryDTO struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Number    int    `json:"number"`
	Yellow    int    `json:"yellow"`
	Red       int    `json:"red"`
	YellowRed int    `json:"yellow_red"`
}

type rosterSheetDTO struct {
	Name    string           `json:"name"`
	Kit     string           `json:"kit,omitempty"`
	Coach   string           `json:"coach,omitempty"`
	Players []rosterEntryDTO `json:"players"`
}

type matchDTO struct {
	ID                  string         `json:"id"`
	SeasonID            string         `json:"season_id"`
	HomeTeamID          string         `json:"home_team_id"`
	AwayTeamID          string         `json:"away_team_id"`
	RefereeID           string         `json:"referee_id,omitempty"`
	Gameday             int            `json:"gameday"`
	Date                string         `json:"date"`
	Venue               string         `json:"venue,omitempty"`
	Status              string         `json:"status"`
	Score               scoreDTO       `json:"score"`
	Home                rosterSheetDTO `json:"home"`
	Away                rosterSheetDTO `json:"away"`
	FirstHalfStartedAt  *string        `json:"first_half_started_at,omitempty"`
	FirstHalfEndedAt    *string        `json:"first_half_ended_at,omitempty"`
	SecondHalfStartedAt *string        `json:"second_half_started_at,omitempty"`
	SecondHalfEndedAt   *string        `json:"second_half_ended_at,omitempty"`
	Report              string         `json:"report,omitempty"`
	Paid                bool           `json:"paid"`
	Version             int            `json:"version"`
}

type eventDTO struct {
	ID         string `json:"id"`
	MatchID    string `json:"match_id"`
	SeasonID   string `json:"season_id"`
	PlayerID   string `json:"player_id"`
	TeamID     string `json:"team_id"`
	Type       string `json:"type"`
	Minute     int    `json:"minute"`
	Side       string `json:"side,omitempty"`
	OwnGoal    bool   `json:"own_goal,omitempty"`
	PlayerName string `json:"player_name"`
	Number     int    `json:"number"`
	OccurredAt string `json:"occurred_at"`
}

type suspensionDTO struct {
	Reason    string `json:"reason"`
	BlockDate string `json:"block_date"`
}

type cardResultDTO struct {
	Event         eventDTO       `json:"event"`
	VoidedEventID string         `json:"voided_event_id,omitempty"`
	Suspension    *suspensionDTO `json:"suspension,omitempty"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type leaderboardEntryDTO struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Number     int    `json:"number"`
	ImageURL   string `json:"image_url,omitempty"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	Type       string `json:"type"`
	Count      int    `json:"count"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) *string {
	if v == nil {
		return nil
	}
	out := formatTime(*v)
	return &out
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{ID: v.ID, Code: v.Code, Name: v.Name, HourlyRateCents: v.HourlyRate}
}

func seasonToDTO(v league.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		Name:      v.Name,
		Primary:   v.Primary,
		CreatedAt: formatTime(v.CreatedAt),
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:            v.ID,
		LeagueID:      v.LeagueID,
		Name:          v.Name,
		Kit:           v.Kit,
		Points:        v.Points,
		Cancellations: v.Cancellations,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:          v.ID,
		LeagueID:    v.LeagueID,
		TeamID:      v.TeamID,
		Name:        v.Name,
		Number:      v.Number,
		ImageURL:    v.ImageURL,
		Eligibility: string(v.Eligibility),
		BlockDate:   formatOptionalTime(v.BlockDate),
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func rosterSheetToDTO(v match.RosterSheet) rosterSheetDTO {
	players := make([]rosterEntryDTO, 0, len(v.Players))
	for _, e := range v.Players {
		players = append(players, rosterEntryDTO{
			PlayerID:  e.PlayerID,
			Name:      e.Name,
			Number:    e.Number,
			Yellow:    e.Yellow,
			Red:       e.Red,
			YellowRed: e.YellowRed,
		})
	}
	return rosterSheetDTO{Name: v.Name, Kit: v.Kit, Coach: v.Coach, Players: players}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:                  v.ID,
		SeasonID:            v.SeasonID,
		HomeTeamID:          v.HomeTeamID,
		AwayTeamID:          v.AwayTeamID,
		RefereeID:           v.RefereeID,
		Gameday:             v.Details.Gameday,
		Date:                formatTime(v.Details.Date),
		Venue:               v.Details.Venue,
		Status:              string(v.Status),
		Score:               scoreDTO{Home: v.Score.Home, Away: v.Score.Away},
		Home:                rosterSheetToDTO(v.Home),
		Away:                rosterSheetToDTO(v.Away),
		FirstHalfStartedAt:  formatOptionalTime(v.FirstHalfStartedAt),
		FirstHalfEndedAt:    formatOptionalTime(v.FirstHalfEndedAt),
		SecondHalfStartedAt: formatOptionalTime(v.SecondHalfStartedAt),
		SecondHalfEndedAt:   formatOptionalTime(v.SecondHalfEndedAt),
		Report:              v.Report,
		Paid:                v.Paid,
		Version:             v.Version,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

func eventToDTO(v matchevent.Event) eventDTO {
	return eventDTO{
		ID:         v.ID,
		MatchID:    v.MatchID,
		SeasonID:   v.SeasonID,
		PlayerID:   v.PlayerID,
		TeamID:     v.TeamID,
		Type:       string(v.Type),
		Minute:     v.Minute,
		Side:       string(v.Side),
		OwnGoal:    v.OwnGoal,
		PlayerName: v.Snapshot.PlayerName,
		Number:     v.Snapshot.Number,
		OccurredAt: formatTime(v.OccurredAt),
	}
}

func cardResultToDTO(v usecase.CardResult) cardResultDTO {
	out := cardResultDTO{
		Event:         eventToDTO(v.Event),
		VoidedEventID: v.Voided,
	}
	if v.Decision.Suspend {
		out.Suspension = &suspensionDTO{
			Reason:    string(v.Decision.Reason),
			BlockDate: formatTime(v.Decision.BlockDate),
		}
	}
	return out
}

func standingToDTO(v leaguestanding.Standing) standingDTO {
	return standingDTO{
		Position:       v.Position,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		Played:         v.Played,
		Won:            v.Won,
		Draw:           v.Draw,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func leaderboardToDTO(items []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(items))
	for _, e := range items {
		out = append(out, leaderboardEntryDTO{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Number:     e.Number,
			ImageURL:   e.ImageURL,
			TeamID:     e.TeamID,
			TeamName:   e.TeamName,
			Type:       string(e.Type),
			Count:      e.Count,
		})
	}
	return out
}
