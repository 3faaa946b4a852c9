package leaderboard

import (
	"testing"

	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/stretchr/testify/require"
)

func goal(playerID, teamID, name string) matchevent.Event {
	return matchevent.Event{
		PlayerID: playerID,
		TeamID:   teamID,
		Type:     matchevent.TypeGoal,
		Snapshot: matchevent.Snapshot{PlayerName: name, Number: 9},
	}
}

func TestCount_SortsDescendingAndKeepsTieOrder(t *testing.T) {
	t.Parallel()

	events := []matchevent.Event{
		goal("p2", "t1", "Bea"),
		goal("p1", "t1", "Ali"),
		goal("p3", "t2", "Cem"),
		goal("p3", "t2", "Cem"),
		{PlayerID: "p1", Type: matchevent.TypeYellow},
		{PlayerID: "p4", Type: matchevent.TypeGoal, OwnGoal: true},
	}

	got := Count(events, matchevent.TypeGoal)
	require.Len(t, got, 3)
	require.Equal(t, "p3", got[0].PlayerID)
	require.Equal(t, 2, got[0].Count)
	require.Equal(t, 1, got[0].Rank)
	require.Equal(t, []string{"p3", "p2", "p1"}, PlayerIDs(got))
	require.Equal(t, "Bea", got[1].PlayerName)
}

func TestTop(t *testing.T) {
	t.Parallel()

	entries := []Entry{{PlayerID: "a"}, {PlayerID: "b"}, {PlayerID: "c"}}
	require.Len(t, Top(entries, 2), 2)
	require.Len(t, Top(entries, 5), 3)
	require.Len(t, Top(entries, 0), 3)
}

func TestHydrate_PrefersCurrentRecords(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{PlayerID: "p1", PlayerName: "Old Name", TeamID: "t-old", Count: 3},
		{PlayerID: "gone", PlayerName: "Snapshot Only", TeamID: "t1", Count: 1},
	}
	players := []player.Player{{ID: "p1", Name: "New Name", Number: 10, TeamID: "t1"}}
	teams := []team.Team{{ID: "t1", Name: "Blau-Weiss"}}

	got := Hydrate(entries, players, teams)
	require.Equal(t, "New Name", got[0].PlayerName)
	require.Equal(t, "t1", got[0].TeamID)
	require.Equal(t, "Blau-Weiss", got[0].TeamName)
	require.Equal(t, "Snapshot Only", got[1].PlayerName)
	require.Equal(t, "Blau-Weiss", got[1].TeamName)
	require.Equal(t, "Old Name", entries[0].PlayerName, "input must not be mutated")
}
