package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
)

func TestMatchRepository_CommitChecksVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository()
	if err := repo.CreateBatch(ctx, []match.Match{{ID: "m1", SeasonID: "s1", HomeTeamID: "a", AwayTeamID: "b", Status: match.StatusPending}}); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	m, _, _ := repo.GetByID(ctx, "m1")
	if m.Version != 1 {
		t.Fatalf("unexpected initial version: %d", m.Version)
	}

	m.Score.Home = 1
	committed, err := repo.Commit(ctx, m, match.Mutation{Append: []matchevent.Event{{ID: "e1", MatchID: "m1", SeasonID: "s1", Type: matchevent.TypeGoal}}})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if committed.Version != 2 {
		t.Fatalf("unexpected version after commit: %d", committed.Version)
	}

	// m still carries version 1.
	if _, err := repo.Commit(ctx, m, match.Mutation{}); !errors.Is(err, match.ErrStaleVersion) {
		t.Fatalf("expected stale version error, got %v", err)
	}

	events, _ := repo.Events().ListByMatch(ctx, "m1")
	if len(events) != 1 {
		t.Fatalf("unexpected ledger size: %d", len(events))
	}
}

func TestMatchRepository_ClearAndRemoveEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository()
	_ = repo.CreateBatch(ctx, []match.Match{
		{ID: "m1", SeasonID: "s1"},
		{ID: "m2", SeasonID: "s1"},
	})

	m1, _, _ := repo.GetByID(ctx, "m1")
	m1, _ = repo.Commit(ctx, m1, match.Mutation{Append: []matchevent.Event{{ID: "e1", MatchID: "m1"}, {ID: "e2", MatchID: "m1"}}})
	m2, _, _ := repo.GetByID(ctx, "m2")
	_, _ = repo.Commit(ctx, m2, match.Mutation{Append: []matchevent.Event{{ID: "e3", MatchID: "m2"}}})

	m1, err := repo.Commit(ctx, m1, match.Mutation{Remove: []string{"e1"}})
	if err != nil {
		t.Fatalf("commit remove: %v", err)
	}
	existing, _ := repo.Events().ExistingIDs(ctx, []string{"e1", "e2", "e3"})
	if _, ok := existing["e1"]; ok || len(existing) != 2 {
		t.Fatalf("unexpected existing ids: %v", existing)
	}

	if _, err := repo.Commit(ctx, m1, match.Mutation{ClearEvents: true}); err != nil {
		t.Fatalf("commit clear: %v", err)
	}
	events, _ := repo.Events().ListByMatch(ctx, "m1")
	if len(events) != 0 {
		t.Fatalf("expected cleared ledger for m1, got %d", len(events))
	}
	others, _ := repo.Events().ListByMatch(ctx, "m2")
	if len(others) != 1 {
		t.Fatalf("clearing m1 must not touch m2, got %d", len(others))
	}
}

func TestMatchRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository()
	_ = repo.CreateBatch(ctx, []match.Match{{ID: "m1", SeasonID: "s1", Home: match.RosterSheet{Players: []match.RosterEntry{{PlayerID: "p1"}}}}})

	m, _, _ := repo.GetByID(ctx, "m1")
	m.Home.Players[0].Yellow = 3

	again, _, _ := repo.GetByID(ctx, "m1")
	if again.Home.Players[0].Yellow != 0 {
		t.Fatalf("stored roster sheet was mutated through a returned copy")
	}
}

func TestSeasonRepository_SetPrimaryKeepsOnePerLeague(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSeasonRepository(nil)
	for _, id := range []string{"s1", "s2"} {
		_ = repo.Create(ctx, seasonFixture(id, "l1"))
	}
	_ = repo.Create(ctx, seasonFixture("other", "l2"))

	if err := repo.SetPrimary(ctx, "l1", "s1"); err != nil {
		t.Fatalf("set primary: %v", err)
	}
	if err := repo.SetPrimary(ctx, "l2", "other"); err != nil {
		t.Fatalf("set primary: %v", err)
	}
	if err := repo.SetPrimary(ctx, "l1", "s2"); err != nil {
		t.Fatalf("set primary: %v", err)
	}

	seasons, _ := repo.ListByLeague(ctx, "l1")
	primaries := 0
	for _, s := range seasons {
		if s.Primary {
			primaries++
			if s.ID != "s2" {
				t.Fatalf("unexpected primary season %s", s.ID)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary season, got %d", primaries)
	}
	if p, ok, _ := repo.GetPrimary(ctx, "l2"); !ok || p.ID != "other" {
		t.Fatalf("other league primary must be untouched")
	}

	if err := repo.SetPrimary(ctx, "l1", "other"); err == nil {
		t.Fatalf("expected error for season of another league")
	}
}

func seasonFixture(id, leagueID string) league.Season {
	return league.Season{ID: id, LeagueID: leagueID, Name: id}
}
