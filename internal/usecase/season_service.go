package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/billing"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/schedule"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/riskibarqy/amateur-league/internal/platform/id"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
)

type CreateSeasonInput struct {
	LeagueID string
	Name     string
	Primary  bool
}

type GenerateFixturesInput struct {
	SeasonID     string
	Rounds       int
	FirstGameday int
	Start        time.Time
	Interval     time.Duration
	Venue        string
}

type SeasonService struct {
	leagueRepo league.Repository
	seasonRepo league.SeasonRepository
	teamRepo   team.Repository
	matchRepo  match.Repository
	points     pointsProjector
	cancels    cancellationLedger
	ids        id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeasonService(
	leagueRepo league.Repository,
	seasonRepo league.SeasonRepository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	billingRepo billing.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *SeasonService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		points:     pointsProjector{seasonRepo: seasonRepo, teamRepo: teamRepo, matchRepo: matchRepo},
		cancels:    cancellationLedger{matchRepo: matchRepo, billingRepo: billingRepo},
		ids:        ids,
		logger:     logger.Named("usecase.season"),
		now:        time.Now,
	}
}

func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (league.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)
	if input.LeagueID == "" || input.Name == "" {
		return league.Season{}, fmt.Errorf("%w: league id and season name are required", ErrInvalidInput)
	}
	if err := s.ensureLeague(ctx, input.LeagueID); err != nil {
		return league.Season{}, err
	}

	seasonID, err := s.ids.NewID()
	if err != nil {
		return league.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	season := league.Season{
		ID:        seasonID,
		LeagueID:  input.LeagueID,
		Name:      input.Name,
		CreatedAt: s.now().UTC(),
	}
	if err := season.Validate(); err != nil {
		return league.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return league.Season{}, fmt.Errorf("create season: %w", err)
	}

	if input.Primary {
		if err := s.SetPrimary(ctx, input.LeagueID, season.ID); err != nil {
			return league.Season{}, err
		}
		season.Primary = true
	}

	s.logger.InfoContext(ctx, "season created", "league_id", season.LeagueID, "season_id", season.ID, "primary", season.Primary)
	return season, nil
}

func (s *SeasonService) ListSeasons(ctx context.Context, leagueID string) ([]league.Season, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if err := s.ensureLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	seasons, err := s.seasonRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list seasons by league: %w", err)
	}
	return seasons, nil
}

// SetPrimary makes seasonID the only primary season of its league and
// re-projects team points and cancellation counters against it.
func (s *SeasonService) SetPrimary(ctx context.Context, leagueID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SetPrimary")
	defer span.End()

	season, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return err
	}
	if season.LeagueID != strings.TrimSpace(leagueID) {
		return fmt.Errorf("%w: season=%s league=%s", ErrNotFound, season.ID, leagueID)
	}

	if err := s.seasonRepo.SetPrimary(ctx, season.LeagueID, season.ID); err != nil {
		return fmt.Errorf("set primary season: %w", err)
	}
	if _, err := s.points.Refresh(ctx, season.LeagueID); err != nil {
		return fmt.Errorf("refresh team points: %w", err)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, season.LeagueID)
	if err != nil {
		return fmt.Errorf("list teams by league: %w", err)
	}
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	counts, err := s.cancels.Count(ctx, season.ID, teamIDs)
	if err != nil {
		return fmt.Errorf("count season cancellations: %w", err)
	}
	if err := s.teamRepo.SetCancellations(ctx, counts); err != nil {
		return fmt.Errorf("set team cancellations: %w", err)
	}
	return nil
}

// GenerateFixtures schedules a round robin over the league's teams. A season
// that already has matches is left untouched.
func (s *SeasonService) GenerateFixtures(ctx context.Context, input GenerateFixturesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GenerateFixtures")
	defer span.End()

	if input.Rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be >= 1", ErrInvalidInput)
	}
	if input.Interval < 0 {
		return nil, fmt.Errorf("%w: interval must be >= 0", ErrInvalidInput)
	}

	season, err := s.getSeason(ctx, input.SeasonID)
	if err != nil {
		return nil, err
	}

	existing, err := s.matchRepo.ListBySeason(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: season=%s already has %d matches", ErrConflict, season.ID, len(existing))
	}

	teams, err := s.teamRepo.ListByLeague(ctx, season.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	fixtures, err := schedule.Generate(teams, input.Rounds, input.FirstGameday)
	if err != nil {
		if errors.Is(err, schedule.ErrNotEnoughTeams) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("generate fixtures: %w", err)
	}

	matches, err := schedule.Materialize(fixtures, season.ID, schedule.Options{
		Rounds:       input.Rounds,
		FirstGameday: input.FirstGameday,
		Start:        input.Start,
		Interval:     input.Interval,
		Venue:        strings.TrimSpace(input.Venue),
	}, s.ids.NewID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	for i := range matches {
		matches[i].CreatedAt = now
		matches[i].UpdatedAt = now
	}
	if err := s.matchRepo.CreateBatch(ctx, matches); err != nil {
		return nil, fmt.Errorf("create matches: %w", err)
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		"season_id", season.ID,
		"teams", len(teams),
		"rounds", input.Rounds,
		"matches", len(matches),
	)
	return matches, nil
}

func (s *SeasonService) ListMatches(ctx context.Context, seasonID string) ([]match.Match, error) {
	season, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListBySeason(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}
	return matches, nil
}

// Teardown deletes the season with its matches and ledger. Tearing down the
// primary season also resets the league's cancellation counters.
func (s *SeasonService) Teardown(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Teardown")
	defer span.End()

	season, err := s.getSeason(ctx, seasonID)
	if err != nil {
		return err
	}

	if err := s.matchRepo.DeleteBySeason(ctx, season.ID); err != nil {
		return fmt.Errorf("delete matches by season: %w", err)
	}
	if season.Primary {
		if err := s.teamRepo.ResetCancellations(ctx, season.LeagueID); err != nil {
			return fmt.Errorf("reset team cancellations: %w", err)
		}
	}
	if err := s.seasonRepo.Delete(ctx, season.ID); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	if _, err := s.points.Refresh(ctx, season.LeagueID); err != nil {
		return fmt.Errorf("refresh team points: %w", err)
	}

	s.logger.WarnContext(ctx, "season torn down", "league_id", season.LeagueID, "season_id", season.ID)
	return nil
}

func (s *SeasonService) ensureLeague(ctx context.Context, leagueID string) error {
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return nil
}

func (s *SeasonService) getSeason(ctx context.Context, seasonID string) (league.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return league.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	season, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return league.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return league.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return season, nil
}
