package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

const (
	LeagueIDKreisliga = "kreisliga-nord"
	SeasonIDKreisliga = "kreisliga-nord-2026"
)

func SeedLeagues() []league.League {
	rate := int64(2500)
	return []league.League{
		{
			ID:         LeagueIDKreisliga,
			Code:       "KLN",
			Name:       "Kreisliga Nord",
			HourlyRate: &rate,
			CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedSeasons() []league.Season {
	return []league.Season{
		{
			ID:        SeasonIDKreisliga,
			LeagueID:  LeagueIDKreisliga,
			Name:      "2026",
			Primary:   true,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "kln-rot-weiss", LeagueID: LeagueIDKreisliga, Name: "Rot-Weiss Nord", Kit: "red", ContactEmail: "captain@rot-weiss.example"},
		{ID: "kln-eintracht", LeagueID: LeagueIDKreisliga, Name: "Eintracht Hafen", Kit: "blue", ContactEmail: "team@eintracht.example"},
		{ID: "kln-borussia", LeagueID: LeagueIDKreisliga, Name: "Borussia Ost", Kit: "black", ContactEmail: "info@borussia.example"},
		{ID: "kln-fortuna", LeagueID: LeagueIDKreisliga, Name: "Fortuna West", Kit: "green", ContactEmail: "kontakt@fortuna.example"},
	}
}

// SeedPlayers lists eight players per seeded team.
func SeedPlayers() []player.Player {
	out := make([]player.Player, 0, 32)
	for _, t := range SeedTeams() {
		for n := 1; n <= 8; n++ {
			out = append(out, player.Player{
				ID:          fmt.Sprintf("%s-p%02d", t.ID, n),
				LeagueID:    t.LeagueID,
				TeamID:      t.ID,
				Name:        fmt.Sprintf("%s #%d", t.Name, n),
				Number:      n,
				Eligibility: player.EligibilityEligible,
			})
		}
	}
	return out
}
