package leaguestanding

import (
	"sort"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

// Calculate builds the table for leagueID from matches. Rows are seeded in
// teams order so that ties keep a stable encounter order; teams only seen in
// matches are appended as they appear. Only counted matches contribute.
func Calculate(leagueID string, teams []team.Team, matches []match.Match) []Standing {
	rows := make([]*Standing, 0, len(teams))
	byTeam := make(map[string]*Standing, len(teams))

	row := func(teamID, name string) *Standing {
		if r, ok := byTeam[teamID]; ok {
			if r.TeamName == "" {
				r.TeamName = name
			}
			return r
		}
		r := &Standing{LeagueID: leagueID, TeamID: teamID, TeamName: name}
		byTeam[teamID] = r
		rows = append(rows, r)
		return r
	}

	for _, t := range teams {
		row(t.ID, t.Name)
	}

	for _, m := range matches {
		if !m.Status.Counted() {
			continue
		}
		home := row(m.HomeTeamID, m.Home.Name)
		away := row(m.AwayTeamID, m.Away.Name)
		apply(home, m.Score.Home, m.Score.Away)
		apply(away, m.Score.Away, m.Score.Home)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].GoalDifference > rows[j].GoalDifference
	})

	out := make([]Standing, 0, len(rows))
	for i, r := range rows {
		r.Position = i + 1
		out = append(out, *r)
	}
	return out
}

func apply(r *Standing, scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	r.GoalDifference = r.GoalsFor - r.GoalsAgainst
	switch {
	case scored > conceded:
		r.Won++
		r.Points += PointsWin
	case scored == conceded:
		r.Draw++
		r.Points += PointsDraw
	default:
		r.Lost++
	}
}

// Points returns the points projection per team id.
func Points(teams []team.Team, matches []match.Match) map[string]int {
	out := make(map[string]int, len(teams))
	for _, s := range Calculate("", teams, matches) {
		out[s.TeamID] = s.Points
	}
	return out
}
