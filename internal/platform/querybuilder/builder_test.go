package querybuilder

import "testing"

func TestSelectBuilder_JoinAndLock(t *testing.T) {
	query, args, err := Select("m.public_id", "m.version").
		From("matches m").
		Join("JOIN seasons s ON s.public_id = m.season_public_id").
		Where(Eq("s.league_public_id", "l1"), InStrings("m.status", []string{"done", "submitted"})).
		OrderBy("m.gameday", "m.id").
		Limit(50).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT m.public_id, m.version FROM matches m JOIN seasons s ON s.public_id = m.season_public_id " +
		"WHERE s.league_public_id = $1 AND m.status IN ($2, $3) ORDER BY m.gameday, m.id LIMIT 50 FOR UPDATE"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "l1" || args[2] != "submitted" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("*").From("match_events").Where(InStrings("season_public_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT * FROM match_events WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestSelectBuilder_RangeConditions(t *testing.T) {
	query, args, err := Select("count(*)").
		From("match_events").
		Where(Gte("occurred_at", "2026-01-01"), Lt("occurred_at", "2026-07-01"), NotEq("event_type", "goal")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	want := "SELECT count(*) FROM match_events WHERE occurred_at >= $1 AND occurred_at < $2 AND event_type <> $3"
	if query != want || len(args) != 3 {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s (%+v)", want, query, args)
	}
}

func TestInsertBuilder_OnConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("discipline_cases").
		Columns("public_id", "match_public_id").
		Values("c1", "m1").
		Suffix("ON CONFLICT (match_public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO discipline_cases (public_id, match_public_id) VALUES ($1, $2) ON CONFLICT (match_public_id) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "c1" || args[1] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_VersionGuard(t *testing.T) {
	query, args, err := Update("matches").
		Set("status", "first").
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "m1"), Eq("version", 3)).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	want := "UPDATE matches SET status = $1, version = version + 1, updated_at = NOW() WHERE public_id = $2 AND version = $3"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[2] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("matches").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped delete")
	}

	query, args, err := DeleteFrom("match_events").Where(Eq("match_public_id", "m1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM match_events WHERE match_public_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}
