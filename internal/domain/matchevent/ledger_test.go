package matchevent

import (
	"testing"
	"time"
)

func TestMostRecentYellow_IgnoresOtherCards(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 4, 5, 15, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "e1", PlayerID: "p1", Type: TypeYellow, Minute: 12, OccurredAt: base},
		{ID: "e2", PlayerID: "p1", Type: TypeYellow, Minute: 30, OccurredAt: base.Add(18 * time.Minute)},
		{ID: "e3", PlayerID: "p1", Type: TypeYellowRed, Minute: 55, OccurredAt: base.Add(43 * time.Minute)},
		{ID: "e4", PlayerID: "p2", Type: TypeYellow, Minute: 70, OccurredAt: base.Add(58 * time.Minute)},
	}

	got, ok := MostRecentYellow(events, "p1")
	if !ok {
		t.Fatalf("expected a yellow card for p1")
	}
	if got.ID != "e2" {
		t.Fatalf("unexpected yellow: got=%s want=e2", got.ID)
	}

	if _, ok := MostRecentYellow(events, "p3"); ok {
		t.Fatalf("expected no yellow card for unknown player")
	}
}

func TestFilter_Matches(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	event := Event{PlayerID: "p1", SeasonID: "s1", Type: TypeGoal, OccurredAt: from.Add(24 * time.Hour)}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "type mismatch", filter: Filter{Type: TypeRed}, want: false},
		{name: "season in scope", filter: Filter{SeasonIDs: []string{"s0", "s1"}}, want: true},
		{name: "empty season scope", filter: Filter{SeasonIDs: []string{}}, want: false},
		{name: "player out of scope", filter: Filter{PlayerIDs: []string{"p2"}}, want: false},
		{name: "inside window", filter: Filter{From: &from, To: &to}, want: true},
		{name: "window ends before event", filter: Filter{To: &from}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.filter.Matches(event); got != tc.want {
				t.Fatalf("unexpected match: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestEvent_Validate(t *testing.T) {
	t.Parallel()

	valid := Event{ID: "e1", MatchID: "m1", SeasonID: "s1", PlayerID: "p1", Type: TypeGoal, Minute: 10, Side: SideHome}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}

	noSide := valid
	noSide.Side = ""
	if err := noSide.Validate(); err == nil {
		t.Fatalf("expected goal without side to fail")
	}

	ownGoalCard := valid
	ownGoalCard.Type = TypeYellow
	ownGoalCard.OwnGoal = true
	if err := ownGoalCard.Validate(); err == nil {
		t.Fatalf("expected own-goal card to fail")
	}
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	if s, err := ParseSide(" Home "); err != nil || s != SideHome {
		t.Fatalf("unexpected parse result: %q %v", s, err)
	}
	if _, err := ParseSide("left"); err == nil {
		t.Fatalf("expected malformed side to fail")
	}
}
