package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/billing"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/stretchr/testify/require"
)

func TestMatchService_ClockCommandsNotify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	steps := []func(context.Context, string) (match.Match, error){
		env.matchSvc.StartGame,
		env.matchSvc.EndFirstHalf,
		env.matchSvc.StartSecondHalf,
		env.matchSvc.EndGame,
	}
	for _, step := range steps {
		if _, err := step(ctx, "m1"); err != nil {
			t.Fatalf("clock step: %v", err)
		}
	}

	got, err := env.matchSvc.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, match.StatusCompleted, got.Status)
	require.Equal(t, []notification.Kind{
		notification.KindGameStarted,
		notification.KindHalfEnded,
		notification.KindHalfStarted,
		notification.KindGameEnded,
	}, env.notifier.kinds())

	_, err = env.matchSvc.StartGame(ctx, "m1")
	require.ErrorIs(t, err, ErrConflict)
}

func TestMatchService_UnknownMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.matchSvc.StartGame(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMatchService_GoalAndDeleteRestoreScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	event, err := env.matchSvc.RecordGoal(ctx, GoalInput{MatchID: "m1", PlayerID: "t1-p2", Side: "away", Minute: 33})
	require.NoError(t, err)
	require.Equal(t, matchevent.TypeGoal, event.Type)
	require.Equal(t, "Player 2 of t1", event.Snapshot.PlayerName)

	m, _ := env.matchSvc.Get(ctx, "m1")
	require.Equal(t, match.Score{Away: 1}, m.Score)

	events, err := env.matchSvc.ListEvents(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	m, err = env.matchSvc.DeleteEvent(ctx, "m1", event.ID)
	require.NoError(t, err)
	require.Equal(t, match.Score{}, m.Score)

	events, _ = env.matchSvc.ListEvents(ctx, "m1")
	require.Empty(t, events)

	_, err = env.matchSvc.DeleteEvent(ctx, "m1", event.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMatchService_GoalRejectsMalformedSide(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.RecordGoal(context.Background(), GoalInput{MatchID: "m1", PlayerID: "t0-p1", Side: "left"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchService_ConcurrentGoalsAreSerialized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	const goals = 20
	var wg sync.WaitGroup
	errs := make(chan error, goals)
	for i := 0; i < goals; i++ {
		wg.Add(1)
		go func(minute int) {
			defer wg.Done()
			_, err := env.matchSvc.RecordGoal(ctx, GoalInput{MatchID: "m1", PlayerID: "t0-p1", Side: "home", Minute: minute})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	m, _ := env.matchSvc.Get(ctx, "m1")
	require.Equal(t, goals, m.Score.Home)
	events, _ := env.matchSvc.ListEvents(ctx, "m1")
	require.Len(t, events, goals)
}

func TestMatchService_FourthPrimarySeasonYellowSuspends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	for i := 1; i <= 4; i++ {
		result, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t0", Minute: i * 10, Type: "yellow"})
		require.NoError(t, err)

		p := env.player(t, "t0-p1")
		if i < 4 {
			require.False(t, result.Decision.Suspend, "yellow #%d", i)
			require.Equal(t, player.EligibilityEligible, p.Eligibility)
			continue
		}
		require.True(t, result.Decision.Suspend)
		require.Equal(t, player.EligibilitySuspended, p.Eligibility)
		require.Equal(t, time.Date(2026, 4, 19, 7, 0, 0, 0, time.UTC), *p.BlockDate)
		require.Equal(t, result.Event.ID, p.SuspendedByEventID)
	}

	m, _ := env.matchSvc.Get(ctx, "m1")
	entry, _ := m.Home.Entry("t0-p1")
	require.Equal(t, 4, entry.Yellow)
	require.Contains(t, env.notifier.kinds(), notification.KindPlayerSuspended)
}

func TestMatchService_YellowsOutsidePrimarySeasonDoNotCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.seasons.Create(ctx, league.Season{ID: "s-old", LeagueID: testLeagueID, Name: "2025"}))
	env.addMatch(t, "m-old", "s-old", "t0", "t1")

	for i := 1; i <= 4; i++ {
		result, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m-old", PlayerID: "t0-p1", TeamID: "t0", Minute: i, Type: "yellow"})
		require.NoError(t, err)
		require.False(t, result.Decision.Suspend)
	}
	require.Equal(t, player.EligibilityEligible, env.player(t, "t0-p1").Eligibility)
}

func TestMatchService_RedCardSuspendsImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	result, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t1-p3", TeamID: "t1", Minute: 5, Type: "red"})
	require.NoError(t, err)
	require.True(t, result.Decision.Suspend)
	require.Equal(t, player.EligibilitySuspended, env.player(t, "t1-p3").Eligibility)
}

func TestMatchService_YellowRedVoidsLatestYellow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	first, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p2", TeamID: "t0", Minute: 10, Type: "yellow"})
	require.NoError(t, err)
	second, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p2", TeamID: "t0", Minute: 40, Type: "yellow"})
	require.NoError(t, err)

	result, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p2", TeamID: "t0", Minute: 70, Type: "yellowred"})
	require.NoError(t, err)
	require.Equal(t, second.Event.ID, result.Voided)
	require.True(t, result.Decision.Suspend)

	events, _ := env.matchSvc.ListEvents(ctx, "m1")
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	require.ElementsMatch(t, []string{first.Event.ID, result.Event.ID}, ids)

	m, err := env.matchSvc.Get(ctx, "m1")
	require.NoError(t, err)
	entry, _ := m.Home.Entry("t0-p2")
	require.Equal(t, 1, entry.Yellow, "sheet counts the yellows still in the ledger")
	require.Equal(t, 1, entry.YellowRed)
}

func TestMatchService_YellowRedKeepsSheetInLineWithLedger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t0", Minute: 10, Type: "yellow"})
	require.NoError(t, err)
	result, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t0", Minute: 70, Type: "yellowred"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Voided)

	yellows, err := env.matches.Events().List(ctx, matchevent.Filter{Type: matchevent.TypeYellow})
	require.NoError(t, err)
	require.Empty(t, yellows)

	m, err := env.matchSvc.Get(ctx, "m1")
	require.NoError(t, err)
	entry, _ := m.Home.Entry("t0-p1")
	require.Zero(t, entry.Yellow)
	require.Equal(t, 1, entry.YellowRed)

	m, err = env.matchSvc.DeleteEvent(ctx, "m1", result.Event.ID)
	require.NoError(t, err)
	entry, _ = m.Home.Entry("t0-p1")
	require.Zero(t, entry.Yellow)
	require.Zero(t, entry.YellowRed)
}

func TestMatchService_CardValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t3", Type: "yellow"})
	require.ErrorIs(t, err, ErrInvalidInput, "team not in match")

	_, err = env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t1", Type: "yellow"})
	require.ErrorIs(t, err, ErrBusinessRule, "player not on that sheet")

	_, err = env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t0", Type: "goal"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "nobody", TeamID: "t0", Type: "red"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMatchService_DeletingCardKeepsSuspension(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	result, err := env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p1", TeamID: "t0", Minute: 5, Type: "red"})
	require.NoError(t, err)

	m, err := env.matchSvc.DeleteEvent(ctx, "m1", result.Event.ID)
	require.NoError(t, err)
	entry, _ := m.Home.Entry("t0-p1")
	require.Zero(t, entry.Red)
	require.Equal(t, player.EligibilitySuspended, env.player(t, "t0-p1").Eligibility)

	orphaned, err := env.suspensionSvc.Reconcile(ctx, testLeagueID)
	require.NoError(t, err)
	require.Len(t, orphaned, 1)
	require.Equal(t, "t0-p1", orphaned[0].ID)
}

func TestMatchService_TeamCancelCapAndPenalties(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	for _, id := range []string{"m1", "m2", "m3", "m4"} {
		env.addMatch(t, id, testSeasonID, "t0", "t1")
	}

	for i, id := range []string{"m1", "m2", "m3"} {
		m, err := env.matchSvc.TeamCancel(ctx, id, "home")
		require.NoError(t, err, "cancellation %d", i+1)
		require.Equal(t, match.StatusCancelled, m.Status)
		require.Equal(t, match.Score{Home: 6}, m.Score)
	}

	before := env.team(t, "t0")
	require.Equal(t, 9, before.Points)

	_, err := env.matchSvc.TeamCancel(ctx, "m4", "home")
	require.ErrorIs(t, err, ErrBusinessRule)

	m4, _ := env.matchSvc.Get(ctx, "m4")
	require.Equal(t, match.StatusPending, m4.Status)
	require.Equal(t, match.Score{}, m4.Score)
	require.Equal(t, 3, env.team(t, "t1").Cancellations)
	require.Equal(t, before.Points, env.team(t, "t0").Points)

	charges, err := env.billing.ListByAccount(ctx, billing.AccountTeam, "t1")
	require.NoError(t, err)
	amounts := make([]int64, 0, len(charges))
	for _, c := range charges {
		amounts = append(amounts, c.AmountCents)
	}
	require.Equal(t, []int64{17000, 27000, 37000}, amounts)
}

func TestMatchService_TeamCancelInSecondarySeasonUsesItsOwnAllowance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	cup, err := env.seasonSvc.CreateSeason(ctx, CreateSeasonInput{LeagueID: testLeagueID, Name: "Cup"})
	require.NoError(t, err)

	for i, id := range []string{"c1", "c2", "c3"} {
		env.addMatch(t, id, cup.ID, "t0", "t1")
		_, err := env.matchSvc.TeamCancel(ctx, id, "away")
		require.NoError(t, err, "cup cancellation %d", i+1)
	}
	require.Zero(t, env.team(t, "t0").Cancellations, "primary season allowance untouched")

	env.addMatch(t, "c4", cup.ID, "t0", "t2")
	_, err = env.matchSvc.TeamCancel(ctx, "c4", "away")
	require.ErrorIs(t, err, ErrBusinessRule)

	env.addMatch(t, "m1", testSeasonID, "t0", "t1")
	_, err = env.matchSvc.TeamCancel(ctx, "m1", "away")
	require.NoError(t, err)
	require.Equal(t, 1, env.team(t, "t0").Cancellations)

	charges, err := env.billing.ListByAccount(ctx, billing.AccountTeam, "t0")
	require.NoError(t, err)
	amounts := make([]int64, 0, len(charges))
	for _, c := range charges {
		amounts = append(amounts, c.AmountCents)
	}
	require.Equal(t, []int64{17000, 27000, 37000, 17000}, amounts)
}

func TestMatchService_TeamCancelNotifiesOpponentAndReferee(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.TeamCancel(ctx, "m1", "away")
	require.NoError(t, err)

	require.Len(t, env.notifier.notices, 1)
	notice := env.notifier.notices[0]
	require.Equal(t, notification.KindMatchCancelled, notice.Kind)
	require.Equal(t, "t0", notice.TeamID)
	require.Equal(t, []string{"t1@example.test", "ref-1"}, notice.Recipients)
}

func TestMatchService_NoShowAndDoneProjectPoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")
	env.addMatch(t, "m2", testSeasonID, "t2", "t3")

	_, err := env.matchSvc.NoShow(ctx, "m1", "away")
	require.NoError(t, err)
	require.Equal(t, 3, env.team(t, "t1").Points)
	require.Zero(t, env.team(t, "t1").Cancellations, "no-show does not count as a team cancellation")

	_, err = env.matchSvc.RecordGoal(ctx, GoalInput{MatchID: "m2", PlayerID: "t2-p1", Side: "home", Minute: 1})
	require.NoError(t, err)
	_, err = env.matchSvc.Done(ctx, "m2")
	require.NoError(t, err)
	_, err = env.matchSvc.Done(ctx, "m2")
	require.NoError(t, err)
	require.Equal(t, 3, env.team(t, "t2").Points, "points are projected, repeated done does not double count")

	_, err = env.matchSvc.ResetGame(ctx, "m2")
	require.NoError(t, err)
	require.Zero(t, env.team(t, "t2").Points)
}

func TestMatchService_ResetGameRollsBackEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.StartGame(ctx, "m1")
	require.NoError(t, err)
	_, err = env.matchSvc.RecordGoal(ctx, GoalInput{MatchID: "m1", PlayerID: "t0-p1", Side: "home", Minute: 3})
	require.NoError(t, err)
	_, err = env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t1-p1", TeamID: "t1", Minute: 8, Type: "yellow"})
	require.NoError(t, err)

	m, err := env.matchSvc.ResetGame(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, match.StatusPending, m.Status)
	require.Equal(t, match.Score{}, m.Score)
	require.Nil(t, m.FirstHalfStartedAt)
	for _, sheet := range []match.RosterSheet{m.Home, m.Away} {
		for _, entry := range sheet.Players {
			require.Zero(t, entry.Yellow+entry.Red+entry.YellowRed)
		}
	}

	events, _ := env.matchSvc.ListEvents(ctx, "m1")
	require.Empty(t, events)
}

func TestMatchService_SubmitSettlesRefereeOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	m, err := env.matchSvc.Submit(ctx, "m1", "  ")
	require.NoError(t, err)
	require.Equal(t, match.StatusSubmitted, m.Status)
	require.True(t, m.Paid)

	_, err = env.matchSvc.Submit(ctx, "m1", "late report")
	require.ErrorIs(t, err, ErrConflict)

	charges, _ := env.billing.ListByAccount(ctx, billing.AccountReferee, "ref-1")
	require.Len(t, charges, 1)
	require.Equal(t, int64(2500), charges[0].AmountCents)

	_, exists, _ := env.discipline.GetByMatch(ctx, "m1")
	require.False(t, exists, "empty report opens no case")
}

func TestMatchService_SubmitWithoutRateKeepsSubmission(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t, withoutHourlyRate())
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.Submit(ctx, "m1", "spectator ran onto the pitch")
	require.ErrorIs(t, err, ErrInternal)

	m, _ := env.matchSvc.Get(ctx, "m1")
	require.Equal(t, match.StatusSubmitted, m.Status)
	require.Equal(t, "spectator ran onto the pitch", m.Report)
	require.False(t, m.Paid)

	c, exists, _ := env.discipline.GetByMatch(ctx, "m1")
	require.True(t, exists)
	require.Equal(t, "spectator ran onto the pitch", c.Report)
}

func TestMatchService_SubmitAbortedMatchKeepsStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.Abort(ctx, "m1")
	require.NoError(t, err)

	m, err := env.matchSvc.Submit(ctx, "m1", "brawl after 60 minutes")
	require.NoError(t, err)
	require.Equal(t, match.StatusAborted, m.Status)
	require.True(t, m.Paid)

	_, exists, _ := env.discipline.GetByMatch(ctx, "m1")
	require.True(t, exists)
}

func TestMatchService_AddPlayerRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")
	env.addMatch(t, "m2", testSeasonID, "t1", "t0")

	m, err := env.matchSvc.AddPlayer(ctx, RosterInput{MatchID: "m1", Side: "home", PlayerID: "t0-p1", Number: 10})
	require.NoError(t, err)
	entry, _ := m.Home.Entry("t0-p1")
	require.Equal(t, 10, entry.Number)
	require.Len(t, m.Home.Players, 3)

	_, err = env.matchSvc.AddPlayer(ctx, RosterInput{MatchID: "m1", Side: "home", PlayerID: "t1-p1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.matchSvc.AddPlayer(ctx, RosterInput{MatchID: "m1", Side: "middle", PlayerID: "t0-p1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.matchSvc.RecordCard(ctx, CardInput{MatchID: "m1", PlayerID: "t0-p2", TeamID: "t0", Minute: 5, Type: "red"})
	require.NoError(t, err)
	_, err = env.matchSvc.RemovePlayer(ctx, "m2", "away", "t0-p2")
	require.NoError(t, err)

	_, err = env.matchSvc.AddPlayer(ctx, RosterInput{MatchID: "m2", Side: "away", PlayerID: "t0-p2"})
	require.ErrorIs(t, err, ErrBusinessRule)

	env.now = env.now.Add(9 * 24 * time.Hour)
	_, err = env.matchSvc.AddPlayer(ctx, RosterInput{MatchID: "m2", Side: "away", PlayerID: "t0-p2"})
	require.NoError(t, err, "suspension window has elapsed")
}

func TestMatchService_ResetHalftime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.addMatch(t, "m1", testSeasonID, "t0", "t1")

	_, err := env.matchSvc.ResetHalftime(ctx, "m1")
	require.True(t, errors.Is(err, ErrConflict))

	for _, step := range []func(context.Context, string) (match.Match, error){
		env.matchSvc.StartGame, env.matchSvc.EndFirstHalf, env.matchSvc.StartSecondHalf,
	} {
		_, err := step(ctx, "m1")
		require.NoError(t, err)
	}

	m, err := env.matchSvc.ResetHalftime(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, match.StatusHalftime, m.Status)
	require.Nil(t, m.SecondHalfStartedAt)
}
