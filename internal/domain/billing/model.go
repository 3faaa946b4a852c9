package billing

import (
	"fmt"
	"time"
)

type AccountType string

const (
	AccountTeam    AccountType = "team"
	AccountReferee AccountType = "referee"
)

type Kind string

const (
	KindRefereeSettlement   Kind = "referee_settlement"
	KindCancellationPenalty Kind = "cancellation_penalty"
)

// Charge is a debit instruction in cents against an account.
type Charge struct {
	ID          string
	AccountType AccountType
	AccountID   string
	Kind        Kind
	AmountCents int64
	MatchID     string
	Note        string
	CreatedAt   time.Time
}

func (c Charge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("charge id is required")
	}
	if c.AccountType != AccountTeam && c.AccountType != AccountReferee {
		return fmt.Errorf("invalid charge account type: %s", c.AccountType)
	}
	if c.AccountID == "" {
		return fmt.Errorf("charge account id is required")
	}
	if c.AmountCents <= 0 {
		return fmt.Errorf("charge amount must be greater than zero")
	}

	return nil
}
