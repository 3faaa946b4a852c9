package leaguestanding

// Standing represents a league table row for one team. It is a view derived
// from counted matches and never stored.
type Standing struct {
	LeagueID       string
	TeamID         string
	TeamName       string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

const (
	PointsWin  = 3
	PointsDraw = 1
)
