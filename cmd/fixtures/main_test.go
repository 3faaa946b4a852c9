package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/amateur-league/internal/interfaces/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseConfig_Template(t *testing.T) {
	t.Parallel()

	cfg, err := parseConfig([]byte(configTemplate))
	require.NoError(t, err)
	assert.Equal(t, "Kreisliga Nord", cfg.League)
	assert.Equal(t, 2, cfg.Rounds)
	assert.Equal(t, 7, cfg.IntervalDays)
	assert.True(t, cfg.Start.Equal(time.Date(2026, 4, 5, 8, 30, 0, 0, time.UTC)))

	teams := cfg.Teams()
	require.Len(t, teams, 4)
	assert.Equal(t, "rot-weiss-nord", teams[0].ID)
	assert.Equal(t, "red", teams[0].Kit)
}

func TestParseConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := parseConfig([]byte(`
league: Kreisliga
season: "2026"
start: "2026-04-05"
rounds: 0
teams:
  - name: Nord
  - name: " nord "
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rounds must be >= 1")
	assert.Contains(t, err.Error(), "duplicate team")

	_, err = parseConfig([]byte(`start: "next sunday"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start")
}

func TestRun_WritesWorkbook(t *testing.T) {
	t.Parallel()

	cfg, err := parseConfig([]byte(configTemplate))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "fixtures.xlsx")
	count, err := run(cfg, out)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(workbook.MasterSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 13)
}
