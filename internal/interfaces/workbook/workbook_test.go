package workbook

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/schedule"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	idgen "github.com/riskibarqy/amateur-league/internal/platform/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "a", Name: "Rot-Weiss Nord"},
		{ID: "b", Name: "Eintracht Hafen"},
		{ID: "c", Name: "Borussia Ost"},
	}
	fixtures, err := schedule.Generate(teams, 2, 1)
	require.NoError(t, err)

	ids := &idgen.SequenceGenerator{Prefix: "m"}
	matches, err := schedule.Materialize(fixtures, "s1", schedule.Options{
		Rounds:       2,
		FirstGameday: 1,
		Start:        time.Date(2026, 4, 5, 10, 30, 0, 0, time.UTC),
		Interval:     7 * 24 * time.Hour,
		Venue:        "Sportplatz Nord",
	}, ids.NewID)
	require.NoError(t, err)

	f, err := Generate("Kreisliga Nord 2026", matches)
	require.NoError(t, err)

	sheets := f.GetSheetList()
	assert.Equal(t, MasterSheet, sheets[0])
	assert.NotContains(t, sheets, "Sheet1")
	for _, tm := range teams {
		assert.Contains(t, sheets, tm.Name)
	}

	rows, err := f.GetRows(MasterSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(matches)+1)
	assert.Equal(t, masterHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "05.04.2026", rows[1][1])
	assert.Equal(t, "10:30", rows[1][2])
	assert.Equal(t, "Sportplatz Nord", rows[1][5])

	// Three teams over two passes: each team plays the other two twice.
	teamRows, err := f.GetRows("Borussia Ost")
	require.NoError(t, err)
	require.Len(t, teamRows, 5)
	home := 0
	for _, row := range teamRows[1:] {
		if row[4] == "Heim" {
			home++
		}
		assert.NotEqual(t, "Borussia Ost", row[3])
	}
	assert.Equal(t, 2, home)
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SV 1-2 Nord", SheetName("SV 1/2 Nord"))
	assert.Equal(t, "Team", SheetName("  "))
	long := SheetName(strings.Repeat("x", 40))
	assert.Len(t, long, maxSheetName)
}

func TestUniqueSheetName(t *testing.T) {
	t.Parallel()

	used := map[string]struct{}{"spielplan": {}}
	assert.Equal(t, "Spielplan (2)", uniqueSheetName("Spielplan", used))
	assert.Equal(t, "Fortuna", uniqueSheetName("Fortuna", used))
	assert.Equal(t, "FORTUNA (2)", uniqueSheetName("FORTUNA", used))
}
