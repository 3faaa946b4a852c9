package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/leaderboard"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/sourcegraph/conc/pool"
)

const leaderboardFanOut = 8

type LeaderboardQuery struct {
	LeagueID    string
	Type        string
	PrimaryOnly bool
	From        *time.Time
	To          *time.Time
}

type LeaderboardService struct {
	leagueRepo league.Repository
	seasonRepo league.SeasonRepository
	teamRepo   team.Repository
	playerRepo player.Repository
	eventRepo  matchevent.Repository
}

func NewLeaderboardService(
	leagueRepo league.Repository,
	seasonRepo league.SeasonRepository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	eventRepo matchevent.Repository,
) *LeaderboardService {
	return &LeaderboardService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
	}
}

// List counts ledger events of one type per player. A league id restricts
// the count to players currently registered with that league's teams.
func (s *LeaderboardService) List(ctx context.Context, query LeaderboardQuery) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List")
	defer span.End()

	eventType, err := matchevent.ParseType(query.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if query.From != nil && query.To != nil && !query.From.Before(*query.To) {
		return nil, fmt.Errorf("%w: time window start must be before end", ErrInvalidInput)
	}

	filter := matchevent.Filter{Type: eventType, From: query.From, To: query.To}

	leagueID := strings.TrimSpace(query.LeagueID)
	var leagues []league.League
	if leagueID != "" {
		item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
		if err != nil {
			return nil, fmt.Errorf("get league: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
		}
		leagues = []league.League{item}

		players, err := s.playerRepo.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, fmt.Errorf("list players by league: %w", err)
		}
		filter.PlayerIDs = make([]string, 0, len(players))
		for _, p := range players {
			filter.PlayerIDs = append(filter.PlayerIDs, p.ID)
		}
	}

	if query.PrimaryOnly {
		if leagues == nil {
			leagues, err = s.leagueRepo.List(ctx)
			if err != nil {
				return nil, fmt.Errorf("list leagues: %w", err)
			}
		}
		filter.SeasonIDs, err = s.primarySeasonIDs(ctx, leagues)
		if err != nil {
			return nil, err
		}
	}

	return s.aggregate(ctx, filter, 0)
}

// TopScorers ranks goal scorers of every league's primary season and keeps
// the best hundred. Players are hydrated after the count.
func (s *LeaderboardService) TopScorers(ctx context.Context) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.TopScorers")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	seasonIDs, err := s.primarySeasonIDs(ctx, leagues)
	if err != nil {
		return nil, err
	}

	return s.aggregate(ctx, matchevent.Filter{Type: matchevent.TypeGoal, SeasonIDs: seasonIDs}, leaderboard.TopScorersLimit)
}

func (s *LeaderboardService) aggregate(ctx context.Context, filter matchevent.Filter, limit int) ([]leaderboard.Entry, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}

	entries := leaderboard.Top(leaderboard.Count(events, filter.Type), limit)
	if len(entries) == 0 {
		return []leaderboard.Entry{}, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, leaderboard.PlayerIDs(entries))
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs(entries, players))
	if err != nil {
		return nil, fmt.Errorf("get teams by ids: %w", err)
	}

	return leaderboard.Hydrate(entries, players, teams), nil
}

// primarySeasonIDs resolves the primary season of each league concurrently.
// The result is non-nil so an empty list scopes the ledger to nothing.
func (s *LeaderboardService) primarySeasonIDs(ctx context.Context, leagues []league.League) ([]string, error) {
	p := pool.NewWithResults[string]().WithContext(ctx).WithMaxGoroutines(leaderboardFanOut)
	for _, item := range leagues {
		leagueID := item.ID
		p.Go(func(ctx context.Context) (string, error) {
			season, ok, err := s.seasonRepo.GetPrimary(ctx, leagueID)
			if err != nil {
				return "", fmt.Errorf("get primary season league=%s: %w", leagueID, err)
			}
			if !ok {
				return "", nil
			}
			return season.ID, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(results))
	for _, seasonID := range results {
		if seasonID != "" {
			out = append(out, seasonID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func teamIDs(entries []leaderboard.Entry, players []player.Player) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, p := range players {
		add(p.TeamID)
	}
	for _, e := range entries {
		add(e.TeamID)
	}
	return out
}
