package postgres

import (
	"testing"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
)

func TestRosterSheetDocument(t *testing.T) {
	sheet := match.RosterSheet{
		Name:  "FC Eiche",
		Kit:   "green",
		Coach: "H. Berg",
		Players: []match.RosterEntry{
			{PlayerID: "p1", Name: "Lena Ott", Number: 9, Yellow: 1},
			{PlayerID: "p2", Number: 4, YellowRed: 1},
		},
	}

	raw, err := encodeSheet(sheet)
	if err != nil {
		t.Fatalf("encode sheet: %v", err)
	}
	got, err := decodeSheet([]byte(raw))
	if err != nil {
		t.Fatalf("decode sheet: %v", err)
	}
	if got.Name != sheet.Name || got.Coach != sheet.Coach || len(got.Players) != 2 {
		t.Fatalf("unexpected sheet: %+v", got)
	}
	if got.Players[0].Yellow != 1 || got.Players[1].YellowRed != 1 || got.Players[0].Number != 9 {
		t.Fatalf("card counters lost: %+v", got.Players)
	}
}

func TestDecodeSheet_EmptyAndInvalid(t *testing.T) {
	got, err := decodeSheet(nil)
	if err != nil || len(got.Players) != 0 {
		t.Fatalf("expected empty sheet, got %+v err=%v", got, err)
	}

	if _, err := decodeSheet([]byte(`{"players": "nope"}`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMatchTableModel_ToDomain(t *testing.T) {
	row := matchTableModel{
		PublicID:   "m1",
		SeasonID:   "s1",
		HomeTeamID: "t1",
		AwayTeamID: "t2",
		HomeSheet:  []byte(`{"name":"A","players":[{"player_id":"p1","number":7}]}`),
		AwaySheet:  []byte(`{"name":"B","players":[]}`),
		HomeScore:  2,
		Status:     "completed",
		Version:    5,
	}

	got, err := row.toDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if got.Status != match.StatusCompleted || got.Score.Home != 2 || got.Version != 5 {
		t.Fatalf("unexpected match: %+v", got)
	}
	if entry, ok := got.Home.Entry("p1"); !ok || entry.Number != 7 {
		t.Fatalf("home sheet entry missing: %+v", got.Home)
	}
	if got.FirstHalfStartedAt != nil {
		t.Fatalf("expected nil half timestamp")
	}
}
