package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	leaguemock "github.com/riskibarqy/amateur-league/internal/mocks/domain/league"
	matchmock "github.com/riskibarqy/amateur-league/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/amateur-league/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type standingMocks struct {
	leagues *leaguemock.Repository
	seasons *leaguemock.SeasonRepository
	teams   *teammock.Repository
	matches *matchmock.Repository
	service *LeagueStandingService
}

func newStandingMocks(t *testing.T) standingMocks {
	t.Helper()
	m := standingMocks{
		leagues: leaguemock.NewRepository(t),
		seasons: leaguemock.NewSeasonRepository(t),
		teams:   teammock.NewRepository(t),
		matches: matchmock.NewRepository(t),
	}
	m.service = NewLeagueStandingService(m.leagues, m.seasons, m.teams, m.matches)
	return m
}

func finished(id, home, away string, status match.Status, homeGoals, awayGoals int) match.Match {
	return match.Match{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     status,
		Score:      match.Score{Home: homeGoals, Away: awayGoals},
	}
}

func TestLeagueStandingService_ListByLeague_PrimaryOnly(t *testing.T) {
	t.Parallel()

	const leagueID = "kreisliga-nord"
	m := newStandingMocks(t)

	m.leagues.On("GetByID", mock.Anything, leagueID).Return(league.League{ID: leagueID}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, leagueID).Return([]team.Team{
		{ID: "team-a", LeagueID: leagueID, Name: "A"},
		{ID: "team-b", LeagueID: leagueID, Name: "B"},
		{ID: "team-c", LeagueID: leagueID, Name: "C"},
	}, nil).Once()
	m.seasons.On("ListByLeague", mock.Anything, leagueID).Return([]league.Season{
		{ID: "s0", LeagueID: leagueID, Name: "2025"},
		{ID: "s1", LeagueID: leagueID, Name: "2026", Primary: true},
	}, nil).Once()
	m.matches.On("ListBySeasons", mock.Anything, []string{"s1"}).Return([]match.Match{
		finished("m1", "team-a", "team-b", match.StatusCompleted, 2, 1),
		finished("m2", "team-a", "team-c", match.StatusSubmitted, 1, 1),
		finished("m3", "team-b", "team-c", match.StatusDone, 0, 3),
		finished("m4", "team-b", "team-a", match.StatusPending, 5, 0),
	}, nil).Once()

	got, err := m.service.ListByLeague(context.Background(), leagueID, true)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, "team-c", got[0].TeamID)
	require.Equal(t, 4, got[0].Points)
	require.Equal(t, 3, got[0].GoalDifference)
	require.Equal(t, 1, got[0].Position)

	require.Equal(t, "team-a", got[1].TeamID)
	require.Equal(t, 4, got[1].Points)
	require.Equal(t, 2, got[1].Played)

	require.Equal(t, "team-b", got[2].TeamID)
	require.Equal(t, 0, got[2].Points)
	require.Equal(t, 2, got[2].Lost)
}

func TestLeagueStandingService_ListByLeague_AllSeasons(t *testing.T) {
	t.Parallel()

	const leagueID = "kreisliga-nord"
	m := newStandingMocks(t)

	m.leagues.On("GetByID", mock.Anything, leagueID).Return(league.League{ID: leagueID}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, leagueID).Return([]team.Team{
		{ID: "team-a", Name: "A"},
		{ID: "team-b", Name: "B"},
	}, nil).Once()
	m.seasons.On("ListByLeague", mock.Anything, leagueID).Return([]league.Season{
		{ID: "s0", LeagueID: leagueID},
		{ID: "s1", LeagueID: leagueID, Primary: true},
	}, nil).Once()
	m.matches.On("ListBySeasons", mock.Anything, []string{"s0", "s1"}).Return([]match.Match{
		finished("m1", "team-b", "team-a", match.StatusCancelled, 6, 0),
	}, nil).Once()

	got, err := m.service.ListByLeague(context.Background(), leagueID, false)
	require.NoError(t, err)
	require.Equal(t, "team-b", got[0].TeamID)
	require.Equal(t, 3, got[0].Points)
	require.Equal(t, 6, got[0].GoalsFor)
}

func TestLeagueStandingService_ListByLeague_NoPrimarySeason(t *testing.T) {
	t.Parallel()

	const leagueID = "kreisliga-nord"
	m := newStandingMocks(t)

	m.leagues.On("GetByID", mock.Anything, leagueID).Return(league.League{ID: leagueID}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, leagueID).Return([]team.Team{
		{ID: "team-a", Name: "A"},
		{ID: "team-b", Name: "B"},
	}, nil).Once()
	m.seasons.On("ListByLeague", mock.Anything, leagueID).Return([]league.Season{{ID: "s0", LeagueID: leagueID}}, nil).Once()

	got, err := m.service.ListByLeague(context.Background(), leagueID, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "team-a", got[0].TeamID)
	require.Zero(t, got[0].Played)
	m.matches.AssertNotCalled(t, "ListBySeasons", mock.Anything, mock.Anything)
}

func TestLeagueStandingService_ListByLeague_Errors(t *testing.T) {
	t.Parallel()

	t.Run("blank league", func(t *testing.T) {
		t.Parallel()
		m := newStandingMocks(t)
		_, err := m.service.ListByLeague(context.Background(), " ", false)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown league", func(t *testing.T) {
		t.Parallel()
		m := newStandingMocks(t)
		m.leagues.On("GetByID", mock.Anything, "missing").Return(league.League{}, false, nil).Once()
		_, err := m.service.ListByLeague(context.Background(), "missing", false)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("match store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		m := newStandingMocks(t)
		m.leagues.On("GetByID", mock.Anything, "l1").Return(league.League{ID: "l1"}, true, nil).Once()
		m.teams.On("ListByLeague", mock.Anything, "l1").Return([]team.Team{}, nil).Maybe()
		m.seasons.On("ListByLeague", mock.Anything, "l1").Return([]league.Season{{ID: "s1", Primary: true}}, nil).Once()
		m.matches.On("ListBySeasons", mock.Anything, []string{"s1"}).Return(nil, boom).Once()

		_, err := m.service.ListByLeague(context.Background(), "l1", true)
		require.ErrorIs(t, err, boom)
	})
}
