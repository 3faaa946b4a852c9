package leaguestanding

import (
	"testing"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/stretchr/testify/require"
)

func played(home, away string, hg, ag int, status match.Status) match.Match {
	return match.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		Score:      match.Score{Home: hg, Away: ag},
		Status:     status,
	}
}

func TestCalculate_ClosedRoundRobin(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "c", Name: "C"}, {ID: "b", Name: "B"}, {ID: "a", Name: "A"}}
	matches := []match.Match{
		played("a", "b", 2, 0, match.StatusDone),
		played("a", "c", 3, 1, match.StatusSubmitted),
		played("b", "c", 1, 0, match.StatusCompleted),
	}

	got := Calculate("l1", teams, matches)
	require.Len(t, got, 3)

	require.Equal(t, "a", got[0].TeamID)
	require.Equal(t, 6, got[0].Points)
	require.Equal(t, 2, got[0].Won)
	require.Equal(t, 4, got[0].GoalDifference)
	require.Equal(t, 1, got[0].Position)

	require.Equal(t, "b", got[1].TeamID)
	require.Equal(t, 3, got[1].Points)
	require.Equal(t, 1, got[1].Won)
	require.Equal(t, 1, got[1].Lost)
	require.Equal(t, -1, got[1].GoalDifference)

	require.Equal(t, "c", got[2].TeamID)
	require.Equal(t, 0, got[2].Points)
	require.Equal(t, 2, got[2].Lost)
	require.Equal(t, -3, got[2].GoalDifference)
	require.Equal(t, 3, got[2].Position)
}

func TestCalculate_SkipsActiveMatches(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "a"}, {ID: "b"}}
	matches := []match.Match{
		played("a", "b", 4, 0, match.StatusPending),
		played("a", "b", 4, 0, match.StatusFirst),
		played("a", "b", 4, 0, match.StatusHalftime),
		played("a", "b", 4, 0, match.StatusSecond),
		played("a", "b", 1, 1, match.StatusAborted),
		played("b", "a", 6, 0, match.StatusCancelled),
	}

	got := Calculate("l1", teams, matches)
	require.Equal(t, "b", got[0].TeamID)
	require.Equal(t, 4, got[0].Points)
	require.Equal(t, 2, got[0].Played)
	require.Equal(t, 1, got[1].Points)
}

func TestCalculate_TiesKeepSeedOrder(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	matches := []match.Match{
		played("y", "x", 1, 1, match.StatusDone),
	}

	got := Calculate("l1", teams, matches)
	require.Equal(t, []string{"x", "y", "z"}, []string{got[0].TeamID, got[1].TeamID, got[2].TeamID})
}

func TestCalculate_AppendsTeamsOnlySeenInMatches(t *testing.T) {
	t.Parallel()

	got := Calculate("l1", nil, []match.Match{
		{HomeTeamID: "guest", AwayTeamID: "host", Home: match.RosterSheet{Name: "Guest"}, Score: match.Score{Home: 2}, Status: match.StatusDone},
	})
	require.Len(t, got, 2)
	require.Equal(t, "guest", got[0].TeamID)
	require.Equal(t, "Guest", got[0].TeamName)
}

func TestPoints(t *testing.T) {
	t.Parallel()

	points := Points([]team.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}, []match.Match{
		played("a", "b", 0, 0, match.StatusDone),
		played("c", "a", 0, 6, match.StatusCancelled),
	})
	require.Equal(t, map[string]int{"a": 4, "b": 1, "c": 0}, points)
}
