// Package workbook renders a season's fixture list as an Excel workbook: one
// master sheet with every match and one sheet per team.
package workbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/xuri/excelize/v2"
)

const (
	MasterSheet   = "Spielplan"
	maxSheetName  = 31
	dateLayout    = "02.01.2006"
	kickoffLayout = "15:04"
)

var masterHeaders = []string{"Spieltag", "Datum", "Anstoss", "Heim", "Gast", "Ort"}
var teamHeaders = []string{"Spieltag", "Datum", "Anstoss", "Gegner", "Heim/Gast", "Ort"}

// Generate builds the workbook. Matches are sorted by gameday, then kickoff.
func Generate(title string, matches []match.Match) (*excelize.File, error) {
	sorted := append([]match.Match(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Details.Gameday != sorted[j].Details.Gameday {
			return sorted[i].Details.Gameday < sorted[j].Details.Gameday
		}
		return sorted[i].Details.Date.Before(sorted[j].Details.Date)
	})

	f := excelize.NewFile()
	f.SetDefaultFont("Arial")
	if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "amateur-league"}); err != nil {
		return nil, fmt.Errorf("set doc props: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeMasterSheet(f, styles, sorted); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}
	if err := writeTeamSheets(f, styles, sorted); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(MasterSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// SheetName turns a team name into a valid, at most 31 character sheet name.
func SheetName(teamName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(teamName))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Team"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

type styles struct {
	header int
	cell   int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#B22222"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}
	cell, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 12, Family: "Arial"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("cell style: %w", err)
	}
	return styles{header: header, cell: cell}, nil
}

func writeMasterSheet(f *excelize.File, st styles, matches []match.Match) error {
	if _, err := f.NewSheet(MasterSheet); err != nil {
		return err
	}

	rows := make([][]any, 0, len(matches))
	for _, m := range matches {
		date, kickoff := formatKickoff(m)
		rows = append(rows, []any{m.Details.Gameday, date, kickoff, m.Home.Name, m.Away.Name, m.Details.Venue})
	}
	if err := writeTable(f, st, MasterSheet, masterHeaders, rows); err != nil {
		return err
	}
	return setWidths(f, MasterSheet, []float64{10, 12, 10, 28, 28, 24})
}

func writeTeamSheets(f *excelize.File, st styles, matches []match.Match) error {
	type teamRef struct {
		id   string
		name string
	}

	var teams []teamRef
	seen := make(map[string]struct{})
	for _, m := range matches {
		for _, t := range []teamRef{{m.HomeTeamID, m.Home.Name}, {m.AwayTeamID, m.Away.Name}} {
			if _, ok := seen[t.id]; ok {
				continue
			}
			seen[t.id] = struct{}{}
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].name < teams[j].name })

	used := map[string]struct{}{strings.ToLower(MasterSheet): {}}
	for _, t := range teams {
		sheet := uniqueSheetName(SheetName(t.name), used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}

		var rows [][]any
		for _, m := range matches {
			date, kickoff := formatKickoff(m)
			switch t.id {
			case m.HomeTeamID:
				rows = append(rows, []any{m.Details.Gameday, date, kickoff, m.Away.Name, "Heim", m.Details.Venue})
			case m.AwayTeamID:
				rows = append(rows, []any{m.Details.Gameday, date, kickoff, m.Home.Name, "Gast", m.Details.Venue})
			}
		}
		if err := writeTable(f, st, sheet, teamHeaders, rows); err != nil {
			return err
		}
		if err := setWidths(f, sheet, []float64{10, 12, 10, 28, 12, 24}); err != nil {
			return err
		}
	}
	return nil
}

func uniqueSheetName(name string, used map[string]struct{}) string {
	candidate := name
	for n := 2; ; n++ {
		if _, ok := used[strings.ToLower(candidate)]; !ok {
			used[strings.ToLower(candidate)] = struct{}{}
			return candidate
		}
		suffix := fmt.Sprintf(" (%d)", n)
		runes := []rune(name)
		if len(runes)+len(suffix) > maxSheetName {
			runes = runes[:maxSheetName-len(suffix)]
		}
		candidate = string(runes) + suffix
	}
}

func writeTable(f *excelize.File, st styles, sheet string, headers []string, rows [][]any) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol, st.header); err != nil {
		return err
	}

	for i, row := range rows {
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return err
		}
	}
	if len(rows) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		if err := f.SetCellStyle(sheet, "A2", end, st.cell); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func formatKickoff(m match.Match) (string, string) {
	if m.Details.Date.IsZero() {
		return "", ""
	}
	return m.Details.Date.Format(dateLayout), m.Details.Date.Format(kickoffLayout)
}
