package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/suspension"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/amateur-league/internal/platform/id"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
)

const (
	testLeagueID = "l1"
	testSeasonID = "s1"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notification.Notice
}

func (n *recordingNotifier) Notify(_ context.Context, notice notification.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) kinds() []notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.Kind, 0, len(n.notices))
	for _, item := range n.notices {
		out = append(out, item.Kind)
	}
	return out
}

type testEnv struct {
	now time.Time

	leagues    *memory.LeagueRepository
	seasons    *memory.SeasonRepository
	teams      *memory.TeamRepository
	players    *memory.PlayerRepository
	matches    *memory.MatchRepository
	billing    *memory.BillingRepository
	discipline *memory.DisciplineRepository
	notifier   *recordingNotifier

	seasonSvc      *SeasonService
	matchSvc       *MatchService
	suspensionSvc  *SuspensionService
	standingSvc    *LeagueStandingService
	leaderboardSvc *LeaderboardService
}

type envOption func(*envConfig)

type envConfig struct {
	hourlyRate *int64
	teams      int
}

func withoutHourlyRate() envOption {
	return func(c *envConfig) { c.hourlyRate = nil }
}

func withTeams(n int) envOption {
	return func(c *envConfig) { c.teams = n }
}

// newTestEnv wires every service against memory repositories with league l1,
// primary season s1, teams t0..tN-1 and three players per team.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	rate := int64(2500)
	cfg := envConfig{hourlyRate: &rate, teams: 4}
	for _, opt := range opts {
		opt(&cfg)
	}

	now := time.Date(2026, 4, 11, 14, 0, 0, 0, time.UTC)
	teams := make([]team.Team, 0, cfg.teams)
	players := make([]player.Player, 0, cfg.teams*3)
	for i := 0; i < cfg.teams; i++ {
		teamID := fmt.Sprintf("t%d", i)
		teams = append(teams, team.Team{
			ID:           teamID,
			LeagueID:     testLeagueID,
			Name:         fmt.Sprintf("Team %d", i),
			Kit:          "white",
			ContactEmail: teamID + "@example.test",
		})
		for n := 1; n <= 3; n++ {
			players = append(players, player.Player{
				ID:          fmt.Sprintf("%s-p%d", teamID, n),
				LeagueID:    testLeagueID,
				TeamID:      teamID,
				Name:        fmt.Sprintf("Player %d of %s", n, teamID),
				Number:      n,
				Eligibility: player.EligibilityEligible,
			})
		}
	}

	env := &testEnv{
		now:        now,
		leagues:    memory.NewLeagueRepository([]league.League{{ID: testLeagueID, Code: "L1", Name: "League One", HourlyRate: cfg.hourlyRate}}),
		seasons:    memory.NewSeasonRepository([]league.Season{{ID: testSeasonID, LeagueID: testLeagueID, Name: "2026", Primary: true, CreatedAt: now}}),
		teams:      memory.NewTeamRepository(teams),
		players:    memory.NewPlayerRepository(players),
		matches:    memory.NewMatchRepository(),
		billing:    memory.NewBillingRepository(),
		discipline: memory.NewDisciplineRepository(),
		notifier:   &recordingNotifier{},
	}

	ids := &id.SequenceGenerator{Prefix: "id-"}
	logger := logging.NewNop()
	clock := func() time.Time { return env.now }

	env.seasonSvc = NewSeasonService(env.leagues, env.seasons, env.teams, env.matches, env.billing, ids, logger)
	env.seasonSvc.now = clock

	env.suspensionSvc = NewSuspensionService(env.leagues, env.seasons, env.players, env.matches.Events(), suspension.NewPolicy(time.UTC), logger)

	env.matchSvc = NewMatchService(MatchRepositories{
		Leagues:    env.leagues,
		Seasons:    env.seasons,
		Teams:      env.teams,
		Players:    env.players,
		Matches:    env.matches,
		Events:     env.matches.Events(),
		Billing:    env.billing,
		Discipline: env.discipline,
	}, env.suspensionSvc, env.notifier, ids, logger)
	env.matchSvc.now = clock

	env.standingSvc = NewLeagueStandingService(env.leagues, env.seasons, env.teams, env.matches)
	env.leaderboardSvc = NewLeaderboardService(env.leagues, env.seasons, env.teams, env.players, env.matches.Events())
	return env
}

// addMatch stores a pending match between two seeded teams with their three
// players listed.
func (e *testEnv) addMatch(t *testing.T, matchID, seasonID, home, away string) match.Match {
	t.Helper()

	m := match.Match{
		ID:         matchID,
		SeasonID:   seasonID,
		HomeTeamID: home,
		AwayTeamID: away,
		RefereeID:  "ref-1",
		Details:    match.Details{Gameday: 1, Date: e.now},
		Home:       match.RosterSheet{Name: home},
		Away:       match.RosterSheet{Name: away},
		Status:     match.StatusPending,
		CreatedAt:  e.now,
	}
	for n := 1; n <= 3; n++ {
		m.Home.Players = append(m.Home.Players, match.RosterEntry{PlayerID: fmt.Sprintf("%s-p%d", home, n), Number: n})
		m.Away.Players = append(m.Away.Players, match.RosterEntry{PlayerID: fmt.Sprintf("%s-p%d", away, n), Number: n})
	}
	if err := e.matches.CreateBatch(context.Background(), []match.Match{m}); err != nil {
		t.Fatalf("create match: %v", err)
	}
	stored, _, _ := e.matches.GetByID(context.Background(), matchID)
	return stored
}

func (e *testEnv) team(t *testing.T, teamID string) team.Team {
	t.Helper()
	item, ok, err := e.teams.GetByID(context.Background(), teamID)
	if err != nil || !ok {
		t.Fatalf("get team %s: ok=%v err=%v", teamID, ok, err)
	}
	return item
}

func (e *testEnv) player(t *testing.T, playerID string) player.Player {
	t.Helper()
	item, ok, err := e.players.GetByID(context.Background(), playerID)
	if err != nil || !ok {
		t.Fatalf("get player %s: ok=%v err=%v", playerID, ok, err)
	}
	return item
}
