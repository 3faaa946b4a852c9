package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindGameStarted     Kind = "game_started"
	KindHalfEnded       Kind = "half_ended"
	KindHalfStarted     Kind = "half_started"
	KindGameEnded       Kind = "game_ended"
	KindGoalScored      Kind = "goal_scored"
	KindCardIssued      Kind = "card_issued"
	KindMatchCancelled  Kind = "match_cancelled"
	KindPlayerSuspended Kind = "player_suspended"
)

// Notice is an out-of-band message about a committed change.
type Notice struct {
	Kind       Kind              `json:"kind"`
	MatchID    string            `json:"match_id"`
	TeamID     string            `json:"team_id,omitempty"`
	PlayerID   string            `json:"player_id,omitempty"`
	Recipients []string          `json:"recipients,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Notifier delivers notices without blocking the caller. Delivery failures
// are the notifier's to log.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// Publisher is the transport behind a Notifier.
type Publisher interface {
	Publish(ctx context.Context, notice Notice) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notice) {}

func NewNopNotifier() Notifier {
	return nopNotifier{}
}
