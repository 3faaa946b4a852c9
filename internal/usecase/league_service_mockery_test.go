package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	leaguemock "github.com/riskibarqy/amateur-league/internal/mocks/domain/league"
	playermock "github.com/riskibarqy/amateur-league/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/amateur-league/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type traceKey struct{}

func TestLeagueService_ListTeamsByLeague_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), traceKey{}, "trace-456")
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewLeagueService(leagueRepo, teamRepo, playerRepo)
	leagueID := "kreisliga-nord"
	expectedTeams := []team.Team{
		{ID: "fc-eiche", LeagueID: leagueID, Name: "FC Eiche"},
		{ID: "sv-hafen", LeagueID: leagueID, Name: "SV Hafen"},
	}

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	teamRepo.
		On("ListByLeague", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(expectedTeams, nil).
		Once()

	got, err := service.ListTeamsByLeague(ctx, " "+leagueID+" ")
	if err != nil {
		t.Fatalf("list teams by league: %v", err)
	}
	if len(got) != len(expectedTeams) {
		t.Fatalf("unexpected team count: got=%d want=%d", len(got), len(expectedTeams))
	}
	if got[0].ID != expectedTeams[0].ID {
		t.Fatalf("unexpected team id: got=%s want=%s", got[0].ID, expectedTeams[0].ID)
	}
}

func TestLeagueService_ListTeamsByLeague_LeagueNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewLeagueService(leagueRepo, teamRepo, playerRepo)
	leagueID := "missing-league"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{}, false, nil).
		Once()

	_, err := service.ListTeamsByLeague(ctx, leagueID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_ListPlayersByLeague_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewLeagueService(leagueRepo, teamRepo, playerRepo)

	leagueRepo.On("GetByID", mock.Anything, "kreisliga-nord").Return(league.League{ID: "kreisliga-nord"}, true, nil).Once()
	playerRepo.On("ListByLeague", mock.Anything, "kreisliga-nord").Return([]player.Player{
		{ID: "p1", LeagueID: "kreisliga-nord", TeamID: "fc-eiche", Eligibility: player.EligibilitySuspended},
	}, nil).Once()

	got, err := service.ListPlayersByLeague(ctx, "kreisliga-nord")
	if err != nil {
		t.Fatalf("list players by league: %v", err)
	}
	if len(got) != 1 || got[0].Eligibility != player.EligibilitySuspended {
		t.Fatalf("unexpected players: %+v", got)
	}

	if _, err := service.ListPlayersByLeague(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
