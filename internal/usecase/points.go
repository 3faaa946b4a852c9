package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

// pointsProjector recomputes Team.Points from the counted matches of the
// league's primary season. Leagues without a primary season project zero.
type pointsProjector struct {
	seasonRepo league.SeasonRepository
	teamRepo   team.Repository
	matchRepo  match.Repository
}

func (p pointsProjector) Refresh(ctx context.Context, leagueID string) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.pointsProjector.Refresh")
	defer span.End()

	teams, err := p.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	var matches []match.Match
	primary, ok, err := p.seasonRepo.GetPrimary(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get primary season: %w", err)
	}
	if ok {
		matches, err = p.matchRepo.ListBySeason(ctx, primary.ID)
		if err != nil {
			return nil, fmt.Errorf("list matches by season: %w", err)
		}
	}

	points := leaguestanding.Points(teams, matches)
	if err := p.teamRepo.UpdatePoints(ctx, points); err != nil {
		return nil, fmt.Errorf("update team points: %w", err)
	}
	return points, nil
}
