package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository, playerRepo player.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) ListTeamsByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	leagueID, err := s.ensureLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	return teams, nil
}

// ListPlayersByLeague returns the league's registered players, suspended ones
// included.
func (s *LeagueService) ListPlayersByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	leagueID, err := s.ensureLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list players by league: %w", err)
	}

	return players, nil
}

func (s *LeagueService) ensureLeague(ctx context.Context, leagueID string) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return "", fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return leagueID, nil
}
