package match

import (
	"fmt"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
)

func (m *Match) transition(from, to Status) error {
	if m.Status != from {
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, m.Status)
	}
	m.Status = to
	return nil
}

func (m *Match) requireActive() error {
	if m.Status.Terminal() {
		return fmt.Errorf("%w: status=%s", ErrTerminalState, m.Status)
	}
	return nil
}

func stamp(t time.Time) *time.Time {
	return &t
}

func (m *Match) StartGame(now time.Time) error {
	if err := m.transition(StatusPending, StatusFirst); err != nil {
		return err
	}
	m.FirstHalfStartedAt = stamp(now)
	return nil
}

func (m *Match) EndFirstHalf(now time.Time) error {
	if err := m.transition(StatusFirst, StatusHalftime); err != nil {
		return err
	}
	m.FirstHalfEndedAt = stamp(now)
	return nil
}

func (m *Match) StartSecondHalf(now time.Time) error {
	if err := m.transition(StatusHalftime, StatusSecond); err != nil {
		return err
	}
	m.SecondHalfStartedAt = stamp(now)
	return nil
}

func (m *Match) EndGame(now time.Time) error {
	if err := m.transition(StatusSecond, StatusCompleted); err != nil {
		return err
	}
	m.SecondHalfEndedAt = stamp(now)
	return nil
}

// ApplyGoal credits one goal to side.
func (m *Match) ApplyGoal(side Side) error {
	if err := m.requireActive(); err != nil {
		return err
	}
	if side == SideHome {
		m.Score.Home++
	} else {
		m.Score.Away++
	}
	return nil
}

// ApplyCard bumps the counter of cardType on the player's entry of side.
func (m *Match) ApplyCard(side Side, playerID string, cardType matchevent.Type) error {
	if err := m.requireActive(); err != nil {
		return err
	}
	if !cardType.IsCard() {
		return fmt.Errorf("%w: %s is not a card", ErrInvalidTransition, cardType)
	}
	sheet := m.Sheet(side)
	i := sheet.index(playerID)
	if i < 0 {
		return fmt.Errorf("%w: player=%s side=%s", ErrPlayerNotListed, playerID, side)
	}
	adjustCard(&sheet.Players[i], cardType, 1)
	return nil
}

// Revert undoes the score or counter change caused by event. Counters never
// drop below zero. It is allowed in every status.
func (m *Match) Revert(event matchevent.Event) {
	if event.Type == matchevent.TypeGoal {
		switch event.Side {
		case SideHome:
			if m.Score.Home > 0 {
				m.Score.Home--
			}
		case SideAway:
			if m.Score.Away > 0 {
				m.Score.Away--
			}
		}
		return
	}

	sheet := m.Sheet(event.Side)
	if event.Side == "" {
		if side, err := m.SideOf(event.TeamID); err == nil {
			sheet = m.Sheet(side)
		}
	}
	if i := sheet.index(event.PlayerID); i >= 0 {
		adjustCard(&sheet.Players[i], event.Type, -1)
	}
}

func adjustCard(entry *RosterEntry, cardType matchevent.Type, delta int) {
	var counter *int
	switch cardType {
	case matchevent.TypeYellow:
		counter = &entry.Yellow
	case matchevent.TypeRed:
		counter = &entry.Red
	case matchevent.TypeYellowRed:
		counter = &entry.YellowRed
	default:
		return
	}
	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
}

// Submit stores the referee report and moves the match to submitted. An
// aborted match keeps its status.
func (m *Match) Submit(report string) error {
	if m.Status != StatusAborted {
		if err := m.requireActive(); err != nil {
			return err
		}
		m.Status = StatusSubmitted
	}
	m.Report = report
	return nil
}

// Done finalizes the match from any status.
func (m *Match) Done() {
	m.Status = StatusDone
}

// Forfeit cancels the match with a 6-0 result for winner.
func (m *Match) Forfeit(winner Side) error {
	if err := m.requireActive(); err != nil {
		return err
	}
	if winner == SideHome {
		m.Score = Score{Home: ForfeitGoals}
	} else {
		m.Score = Score{Away: ForfeitGoals}
	}
	m.Status = StatusCancelled
	return nil
}

// Abort marks the match abandoned from any status without touching the score.
func (m *Match) Abort() {
	m.Status = StatusAborted
}

// Reset rolls the match back to pending. Callers must also clear the ledger.
func (m *Match) Reset() {
	m.Status = StatusPending
	m.Score = Score{}
	m.FirstHalfStartedAt = nil
	m.FirstHalfEndedAt = nil
	m.SecondHalfStartedAt = nil
	m.SecondHalfEndedAt = nil
	for _, sheet := range []*RosterSheet{&m.Home, &m.Away} {
		for i := range sheet.Players {
			sheet.Players[i].Yellow = 0
			sheet.Players[i].Red = 0
			sheet.Players[i].YellowRed = 0
		}
	}
}

// ResetHalftime rolls the match back to halftime. The first half must have ended.
func (m *Match) ResetHalftime() error {
	if m.FirstHalfEndedAt == nil {
		return fmt.Errorf("%w: first half has not ended (status=%s)", ErrInvalidTransition, m.Status)
	}
	m.Status = StatusHalftime
	m.SecondHalfStartedAt = nil
	m.SecondHalfEndedAt = nil
	return nil
}

// AddPlayer lists a player on side. Listing an already present player only
// updates the shirt number.
func (m *Match) AddPlayer(side Side, entry RosterEntry) error {
	if err := m.requireActive(); err != nil {
		return err
	}
	sheet := m.Sheet(side)
	if i := sheet.index(entry.PlayerID); i >= 0 {
		sheet.Players[i].Number = entry.Number
		return nil
	}
	if len(sheet.Players) >= MaxListedPlayers {
		return fmt.Errorf("%w: side=%s max=%d", ErrRosterFull, side, MaxListedPlayers)
	}
	entry.Yellow, entry.Red, entry.YellowRed = 0, 0, 0
	sheet.Players = append(sheet.Players, entry)
	return nil
}

func (m *Match) RemovePlayer(side Side, playerID string) error {
	if err := m.requireActive(); err != nil {
		return err
	}
	sheet := m.Sheet(side)
	i := sheet.index(playerID)
	if i < 0 {
		return fmt.Errorf("%w: player=%s side=%s", ErrPlayerNotListed, playerID, side)
	}
	sheet.Players = append(sheet.Players[:i], sheet.Players[i+1:]...)
	return nil
}
