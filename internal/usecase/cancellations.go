package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/amateur-league/internal/domain/billing"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
)

// cancellationLedger counts team cancellations of one season from the
// penalty charges booked on its matches. Penalty ids derive from the match
// id, so a cancelled match is counted once.
type cancellationLedger struct {
	matchRepo   match.Repository
	billingRepo billing.Repository
}

func (c cancellationLedger) Count(ctx context.Context, seasonID string, teamIDs []string) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.cancellationLedger.Count")
	defer span.End()

	matches, err := c.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}
	inSeason := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		inSeason[m.ID] = struct{}{}
	}

	counts := make(map[string]int, len(teamIDs))
	for _, teamID := range teamIDs {
		charges, err := c.billingRepo.ListByAccount(ctx, billing.AccountTeam, teamID)
		if err != nil {
			return nil, fmt.Errorf("list team charges: %w", err)
		}
		seen := make(map[string]struct{}, len(charges))
		for _, charge := range charges {
			if charge.Kind != billing.KindCancellationPenalty {
				continue
			}
			if _, ok := inSeason[charge.MatchID]; !ok {
				continue
			}
			if _, dup := seen[charge.MatchID]; dup {
				continue
			}
			seen[charge.MatchID] = struct{}{}
		}
		counts[teamID] = len(seen)
	}
	return counts, nil
}
