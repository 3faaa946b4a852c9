package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrBusinessRule          = errors.New("business rule violation")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInternal              = errors.New("internal error")
)

// classify tags a domain error with its taxonomy sentinel. Unknown errors
// pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case errors.Is(err, match.ErrUnknownSide):
		sentinel = ErrInvalidInput
	case errors.Is(err, match.ErrRosterFull),
		errors.Is(err, match.ErrStaleVersion),
		errors.Is(err, match.ErrInvalidTransition),
		errors.Is(err, match.ErrTerminalState):
		sentinel = ErrConflict
	case errors.Is(err, match.ErrPlayerNotListed),
		errors.Is(err, team.ErrCancellationCapExceeded):
		sentinel = ErrBusinessRule
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// IsClientError reports errors caused by the request rather than the system.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrBusinessRule)
}
