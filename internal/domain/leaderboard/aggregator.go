package leaderboard

import (
	"sort"

	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

// Count groups events by player and sorts by count descending. Ties keep the
// order in which players first appear in events. The ledger snapshot fills the
// display fields until Hydrate replaces them. Own goals are not credited.
func Count(events []matchevent.Event, eventType matchevent.Type) []Entry {
	rows := make([]*Entry, 0)
	byPlayer := make(map[string]*Entry)
	for _, e := range events {
		if eventType != "" && e.Type != eventType {
			continue
		}
		if e.OwnGoal {
			continue
		}
		r, ok := byPlayer[e.PlayerID]
		if !ok {
			r = &Entry{
				PlayerID:   e.PlayerID,
				PlayerName: e.Snapshot.PlayerName,
				Number:     e.Snapshot.Number,
				ImageURL:   e.Snapshot.ImageURL,
				TeamID:     e.TeamID,
				Type:       e.Type,
			}
			byPlayer[e.PlayerID] = r
			rows = append(rows, r)
		}
		r.Count++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	out := make([]Entry, 0, len(rows))
	for i, r := range rows {
		r.Rank = i + 1
		out = append(out, *r)
	}
	return out
}

// Top keeps the first n entries.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// PlayerIDs lists the player ids of entries in order.
func PlayerIDs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.PlayerID)
	}
	return out
}

// Hydrate attaches current player and team data. Missing records leave the
// snapshot values in place.
func Hydrate(entries []Entry, players []player.Player, teams []team.Team) []Entry {
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}
	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	out := make([]Entry, len(entries))
	for i, e := range entries {
		if p, ok := playerByID[e.PlayerID]; ok {
			e.PlayerName = p.Name
			e.Number = p.Number
			if p.ImageURL != "" {
				e.ImageURL = p.ImageURL
			}
			e.TeamID = p.TeamID
		}
		if t, ok := teamByID[e.TeamID]; ok {
			e.TeamName = t.Name
		}
		out[i] = e
	}
	return out
}
