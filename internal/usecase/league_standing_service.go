package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"golang.org/x/sync/errgroup"
)

type LeagueStandingService struct {
	leagueRepo league.Repository
	seasonRepo league.SeasonRepository
	teamRepo   team.Repository
	matchRepo  match.Repository
}

func NewLeagueStandingService(
	leagueRepo league.Repository,
	seasonRepo league.SeasonRepository,
	teamRepo team.Repository,
	matchRepo match.Repository,
) *LeagueStandingService {
	return &LeagueStandingService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
	}
}

// ListByLeague computes the table from the league's counted matches. With
// primaryOnly the table covers the primary season only and is empty when the
// league has none.
func (s *LeagueStandingService) ListByLeague(ctx context.Context, leagueID string, primaryOnly bool) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	var (
		teams   []team.Team
		matches []match.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.teamRepo.ListByLeague(gctx, leagueID)
		if err != nil {
			return fmt.Errorf("list teams by league: %w", err)
		}
		teams = items
		return nil
	})
	g.Go(func() error {
		seasons, err := s.seasonRepo.ListByLeague(gctx, leagueID)
		if err != nil {
			return fmt.Errorf("list seasons by league: %w", err)
		}
		seasonIDs := make([]string, 0, len(seasons))
		for _, season := range seasons {
			if primaryOnly && !season.Primary {
				continue
			}
			seasonIDs = append(seasonIDs, season.ID)
		}
		if len(seasonIDs) == 0 {
			return nil
		}
		items, err := s.matchRepo.ListBySeasons(gctx, seasonIDs)
		if err != nil {
			return fmt.Errorf("list matches by seasons: %w", err)
		}
		matches = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return leaguestanding.Calculate(leagueID, teams, matches), nil
}
