package suspension

import (
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
)

const (
	// YellowThreshold suspends on every nth yellow card of a primary season.
	YellowThreshold = 4
	BlockDays       = 8
	BlockHour       = 7
)

type Reason string

const (
	ReasonNone              Reason = ""
	ReasonRedCard           Reason = "red_card"
	ReasonYellowRedCard     Reason = "yellow_red_card"
	ReasonYellowAccumulated Reason = "yellow_accumulation"
)

// Input describes one recorded card.
type Input struct {
	Card       matchevent.Type
	OccurredAt time.Time
	// SeasonYellows is the player's yellow count in the league's primary
	// season including this card.
	SeasonYellows int
	// InPrimarySeason is false when the card's match belongs to another season.
	InPrimarySeason bool
}

type Decision struct {
	Suspend   bool
	Reason    Reason
	BlockDate time.Time
}

// Policy decides suspensions. The zero value blocks in UTC.
type Policy struct {
	Location *time.Location
}

func NewPolicy(loc *time.Location) Policy {
	return Policy{Location: loc}
}

func (p Policy) Decide(in Input) Decision {
	var reason Reason
	switch in.Card {
	case matchevent.TypeRed:
		reason = ReasonRedCard
	case matchevent.TypeYellowRed:
		reason = ReasonYellowRedCard
	case matchevent.TypeYellow:
		if in.InPrimarySeason && in.SeasonYellows > 0 && in.SeasonYellows%YellowThreshold == 0 {
			reason = ReasonYellowAccumulated
		}
	}
	if reason == ReasonNone {
		return Decision{}
	}
	return Decision{Suspend: true, Reason: reason, BlockDate: p.BlockDate(in.OccurredAt)}
}

// BlockDate is 07:00 local time, eight calendar days after the event date.
func (p Policy) BlockDate(eventAt time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	local := eventAt.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+BlockDays, BlockHour, 0, 0, 0, loc)
}

// Orphaned returns suspended players whose triggering event is no longer in
// the ledger. Players without an event reference are skipped.
func Orphaned(players []player.Player, existing map[string]struct{}) []player.Player {
	out := make([]player.Player, 0)
	for _, p := range players {
		if p.Eligibility != player.EligibilitySuspended || p.SuspendedByEventID == "" {
			continue
		}
		if _, ok := existing[p.SuspendedByEventID]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
