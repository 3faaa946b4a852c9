package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/suspension"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
)

type SuspensionService struct {
	leagueRepo league.Repository
	seasonRepo league.SeasonRepository
	playerRepo player.Repository
	eventRepo  matchevent.Repository
	policy     suspension.Policy
	logger     *logging.Logger
}

func NewSuspensionService(
	leagueRepo league.Repository,
	seasonRepo league.SeasonRepository,
	playerRepo player.Repository,
	eventRepo matchevent.Repository,
	policy suspension.Policy,
	logger *logging.Logger,
) *SuspensionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SuspensionService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
		policy:     policy,
		logger:     logger.Named("usecase.suspension"),
	}
}

// Evaluate runs the policy for a committed card event and persists the
// suspension when it triggers. Yellow cards are counted against the primary
// season of the player's league, the committed card included.
func (s *SuspensionService) Evaluate(ctx context.Context, event matchevent.Event, p player.Player) (suspension.Decision, player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.Evaluate")
	defer span.End()

	if !event.Type.IsCard() {
		return suspension.Decision{}, p, nil
	}

	in := suspension.Input{Card: event.Type, OccurredAt: event.OccurredAt}
	if event.Type == matchevent.TypeYellow {
		primary, ok, err := s.seasonRepo.GetPrimary(ctx, p.LeagueID)
		if err != nil {
			return suspension.Decision{}, p, fmt.Errorf("get primary season: %w", err)
		}
		if ok && primary.ID == event.SeasonID {
			yellows, err := s.eventRepo.List(ctx, matchevent.Filter{
				Type:      matchevent.TypeYellow,
				SeasonIDs: []string{primary.ID},
				PlayerIDs: []string{p.ID},
			})
			if err != nil {
				return suspension.Decision{}, p, fmt.Errorf("list season yellow cards: %w", err)
			}
			in.InPrimarySeason = true
			in.SeasonYellows = len(yellows)
		}
	}

	decision := s.policy.Decide(in)
	if !decision.Suspend {
		return decision, p, nil
	}

	suspended := p.Suspend(decision.BlockDate, event.ID)
	if err := s.playerRepo.UpdateEligibility(ctx, suspended); err != nil {
		return decision, p, fmt.Errorf("update player eligibility: %w", err)
	}

	s.logger.InfoContext(ctx, "player suspended",
		"player_id", p.ID,
		"event_id", event.ID,
		"reason", string(decision.Reason),
		"block_date", decision.BlockDate.Format("2006-01-02T15:04:05Z07:00"),
	)
	return decision, suspended, nil
}

// Reconcile lists suspended players of the league whose triggering card event
// has since been deleted. Nothing is reinstated automatically.
func (s *SuspensionService) Reconcile(ctx context.Context, leagueID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.Reconcile")
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

	suspended, err := s.playerRepo.ListSuspended(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list suspended players: %w", err)
	}

	eventIDs := make([]string, 0, len(suspended))
	for _, p := range suspended {
		if p.SuspendedByEventID != "" {
			eventIDs = append(eventIDs, p.SuspendedByEventID)
		}
	}
	existing, err := s.eventRepo.ExistingIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("check ledger events: %w", err)
	}

	orphaned := suspension.Orphaned(suspended, existing)
	if len(orphaned) > 0 {
		s.logger.WarnContext(ctx, "suspensions without ledger event", "league_id", leagueID, "count", len(orphaned))
	}
	return orphaned, nil
}
