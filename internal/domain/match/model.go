package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusFirst     Status = "first"
	StatusHalftime  Status = "halftime"
	StatusSecond    Status = "second"
	StatusCompleted Status = "completed"
	StatusDone      Status = "done"
	StatusSubmitted Status = "submitted"
	StatusCancelled Status = "cancelled"
	StatusAborted   Status = "abbgebrochen"
)

// MaxListedPlayers is the roster sheet cap: eleven plus one.
const MaxListedPlayers = 12

// ForfeitGoals is the score awarded to the winner of a no-show or cancellation.
const ForfeitGoals = 6

var (
	ErrInvalidTransition = errors.New("invalid match transition")
	ErrTerminalState     = errors.New("match is in a terminal state")
	ErrRosterFull        = errors.New("roster sheet is full")
	ErrUnknownSide       = errors.New("team does not play in match")
	ErrPlayerNotListed   = errors.New("player is not listed on roster sheet")
	ErrStaleVersion      = errors.New("match was modified concurrently")
)

type Side = matchevent.Side

const (
	SideHome = matchevent.SideHome
	SideAway = matchevent.SideAway
)

var terminalStatuses = map[Status]struct{}{
	StatusDone:      {},
	StatusCancelled: {},
	StatusSubmitted: {},
	StatusAborted:   {},
}

// countedStatuses are the statuses of matches that have left active play.
var countedStatuses = map[Status]struct{}{
	StatusCompleted: {},
	StatusSubmitted: {},
	StatusCancelled: {},
	StatusAborted:   {},
	StatusDone:      {},
}

func (s Status) Terminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// Counted reports whether a match in this status feeds standings.
func (s Status) Counted() bool {
	_, ok := countedStatuses[s]
	return ok
}

// CountedStatuses lists the counted set in a stable order for queries.
func CountedStatuses() []Status {
	return []Status{StatusCompleted, StatusSubmitted, StatusCancelled, StatusAborted, StatusDone}
}

type Details struct {
	Gameday int
	Date    time.Time
	Venue   string
}

type Score struct {
	Home int
	Away int
}

// RosterEntry is one listed player with the card counters of this match.
type RosterEntry struct {
	PlayerID  string
	Name      string
	Number    int
	Yellow    int
	Red       int
	YellowRed int
}

// RosterSheet is the matchday team sheet of one side.
type RosterSheet struct {
	Name    string
	Kit     string
	Coach   string
	Players []RosterEntry
}

func (r RosterSheet) index(playerID string) int {
	for i := range r.Players {
		if r.Players[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// Entry returns the listed entry of playerID.
func (r RosterSheet) Entry(playerID string) (RosterEntry, bool) {
	if i := r.index(playerID); i >= 0 {
		return r.Players[i], true
	}
	return RosterEntry{}, false
}

type Match struct {
	ID         string
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	RefereeID  string
	Details    Details
	Home       RosterSheet
	Away       RosterSheet
	Score      Score
	Status     Status

	FirstHalfStartedAt  *time.Time
	FirstHalfEndedAt    *time.Time
	SecondHalfStartedAt *time.Time
	SecondHalfEndedAt   *time.Time

	Report string
	Paid   bool
	// Version is bumped by every committed mutation.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match home and away team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match home and away team must differ")
	}
	if m.Details.Gameday < 1 {
		return fmt.Errorf("match gameday must be >= 1")
	}
	if len(m.Home.Players) > MaxListedPlayers || len(m.Away.Players) > MaxListedPlayers {
		return fmt.Errorf("roster sheet exceeds %d players", MaxListedPlayers)
	}
	if m.Score.Home < 0 || m.Score.Away < 0 {
		return fmt.Errorf("match score must be >= 0")
	}

	return nil
}

// TeamID returns the team playing on side.
func (m Match) TeamID(side Side) string {
	if side == SideHome {
		return m.HomeTeamID
	}
	return m.AwayTeamID
}

// SideOf resolves which side teamID plays on.
func (m Match) SideOf(teamID string) (Side, error) {
	switch teamID {
	case m.HomeTeamID:
		return SideHome, nil
	case m.AwayTeamID:
		return SideAway, nil
	default:
		return "", fmt.Errorf("%w: team=%s match=%s", ErrUnknownSide, teamID, m.ID)
	}
}

// Sheet returns the roster sheet of side for in-place mutation.
func (m *Match) Sheet(side Side) *RosterSheet {
	if side == SideHome {
		return &m.Home
	}
	return &m.Away
}

// Goals returns the goals scored by side and conceded by it.
func (m Match) Goals(side Side) (scored, conceded int) {
	if side == SideHome {
		return m.Score.Home, m.Score.Away
	}
	return m.Score.Away, m.Score.Home
}
