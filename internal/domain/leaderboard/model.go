package leaderboard

import "github.com/riskibarqy/amateur-league/internal/domain/matchevent"

// TopScorersLimit caps the cross-league scorer list.
const TopScorersLimit = 100

// Entry is one leaderboard row.
type Entry struct {
	Rank       int
	PlayerID   string
	PlayerName string
	Number     int
	ImageURL   string
	TeamID     string
	TeamName   string
	Type       matchevent.Type
	Count      int
}
