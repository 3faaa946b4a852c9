package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

var ErrNotEnoughTeams = errors.New("at least two teams are required")

// Fixture is one generated pairing.
type Fixture struct {
	// Pass is the 0-based round-robin cycle the pairing belongs to.
	Pass    int
	Gameday int
	Home    team.Team
	Away    team.Team
}

// Options tunes gameday numbering and match materialization.
type Options struct {
	Rounds       int
	FirstGameday int
	// Start is the date of the first gameday; Interval separates gamedays.
	Start    time.Time
	Interval time.Duration
	Venue    string
}

// Generate builds a round-robin fixture list with the circle method. An odd
// team count gets a bye slot; pairings against it are dropped. Odd passes
// swap home and away.
func Generate(teams []team.Team, rounds, firstGameday int) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughTeams, len(teams))
	}
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be >= 1, got %d", rounds)
	}
	if firstGameday < 1 {
		firstGameday = 1
	}

	slots := make([]*team.Team, 0, len(teams)+1)
	for i := range teams {
		slots = append(slots, &teams[i])
	}
	if len(slots)%2 == 1 {
		slots = append(slots, nil)
	}

	n := len(slots)
	steps := n - 1
	total := steps * rounds
	fixed := n - 1

	out := make([]Fixture, 0, len(teams)*(len(teams)-1)/2*rounds)
	for pass := 0; pass < rounds; pass++ {
		for step := 0; step < steps; step++ {
			idx := pass*steps + step
			gameday := (firstGameday-1+idx)%total + 1

			pairs := make([][2]int, 0, n/2)
			if step%2 == 0 {
				pairs = append(pairs, [2]int{step, fixed})
			} else {
				pairs = append(pairs, [2]int{fixed, step})
			}
			for i := 1; i < n/2; i++ {
				home := (step + i) % steps
				away := (step - i + steps) % steps
				pairs = append(pairs, [2]int{home, away})
			}

			for _, pair := range pairs {
				home, away := slots[pair[0]], slots[pair[1]]
				if home == nil || away == nil {
					continue
				}
				if pass%2 == 1 {
					home, away = away, home
				}
				out = append(out, Fixture{Pass: pass, Gameday: gameday, Home: *home, Away: *away})
			}
		}
	}

	return out, nil
}

// Materialize turns fixtures into pending matches with empty roster sheets.
// newID is called once per match.
func Materialize(fixtures []Fixture, seasonID string, opts Options, newID func() (string, error)) ([]match.Match, error) {
	first := opts.FirstGameday
	if first < 1 {
		first = 1
	}

	out := make([]match.Match, 0, len(fixtures))
	for _, f := range fixtures {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}

		var date time.Time
		if !opts.Start.IsZero() {
			offset := f.Gameday - first
			if offset < 0 {
				offset += maxGameday(fixtures)
			}
			date = opts.Start.Add(time.Duration(offset) * opts.Interval)
		}

		out = append(out, match.Match{
			ID:         id,
			SeasonID:   seasonID,
			HomeTeamID: f.Home.ID,
			AwayTeamID: f.Away.ID,
			Details:    match.Details{Gameday: f.Gameday, Date: date, Venue: opts.Venue},
			Home:       match.RosterSheet{Name: f.Home.Name, Kit: f.Home.Kit},
			Away:       match.RosterSheet{Name: f.Away.Name, Kit: f.Away.Kit},
			Status:     match.StatusPending,
		})
	}
	return out, nil
}

func maxGameday(fixtures []Fixture) int {
	out := 0
	for _, f := range fixtures {
		if f.Gameday > out {
			out = f.Gameday
		}
	}
	return out
}
