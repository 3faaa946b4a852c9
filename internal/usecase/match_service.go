package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/billing"
	"github.com/riskibarqy/amateur-league/internal/domain/discipline"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/suspension"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/riskibarqy/amateur-league/internal/platform/id"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
	"github.com/riskibarqy/amateur-league/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// MatchRepositories groups the stores the lifecycle commands touch.
type MatchRepositories struct {
	Leagues    league.Repository
	Seasons    league.SeasonRepository
	Teams      team.Repository
	Players    player.Repository
	Matches    match.Repository
	Events     matchevent.Repository
	Billing    billing.Repository
	Discipline discipline.Repository
}

type GoalInput struct {
	MatchID  string
	PlayerID string
	Side     string
	Minute   int
	OwnGoal  bool
}

type CardInput struct {
	MatchID  string
	PlayerID string
	TeamID   string
	Minute   int
	Type     string
}

type CardResult struct {
	Event    matchevent.Event
	Voided   string
	Decision suspension.Decision
}

type RosterInput struct {
	MatchID  string
	Side     string
	PlayerID string
	// Number overrides the player's registered shirt number when > 0.
	Number int
}

// MatchService runs the match lifecycle. Mutating commands are serialized per
// match id and committed with an optimistic version check; notices go out
// only after the commit.
type MatchService struct {
	repos       MatchRepositories
	suspensions *SuspensionService
	points      pointsProjector
	cancels     cancellationLedger
	notifier    notification.Notifier
	ids         id.Generator
	locks       *resilience.KeyedMutex
	logger      *logging.Logger
	now         func() time.Time
}

func NewMatchService(
	repos MatchRepositories,
	suspensions *SuspensionService,
	notifier notification.Notifier,
	ids id.Generator,
	logger *logging.Logger,
) *MatchService {
	if notifier == nil {
		notifier = notification.NewNopNotifier()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		repos:       repos,
		suspensions: suspensions,
		points:      pointsProjector{seasonRepo: repos.Seasons, teamRepo: repos.Teams, matchRepo: repos.Matches},
		cancels:     cancellationLedger{matchRepo: repos.Matches, billingRepo: repos.Billing},
		notifier:    notifier,
		ids:         ids,
		locks:       &resilience.KeyedMutex{},
		logger:      logger.Named("usecase.match"),
		now:         time.Now,
	}
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	return s.load(ctx, matchID)
}

func (s *MatchService) ListEvents(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	m, err := s.load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	events, err := s.repos.Events.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}
	return events, nil
}

func (s *MatchService) StartGame(ctx context.Context, matchID string) (match.Match, error) {
	return s.clock(ctx, "StartGame", matchID, notification.KindGameStarted, (*match.Match).StartGame)
}

func (s *MatchService) EndFirstHalf(ctx context.Context, matchID string) (match.Match, error) {
	return s.clock(ctx, "EndFirstHalf", matchID, notification.KindHalfEnded, (*match.Match).EndFirstHalf)
}

func (s *MatchService) StartSecondHalf(ctx context.Context, matchID string) (match.Match, error) {
	return s.clock(ctx, "StartSecondHalf", matchID, notification.KindHalfStarted, (*match.Match).StartSecondHalf)
}

func (s *MatchService) EndGame(ctx context.Context, matchID string) (match.Match, error) {
	return s.clock(ctx, "EndGame", matchID, notification.KindGameEnded, (*match.Match).EndGame)
}

func (s *MatchService) clock(
	ctx context.Context,
	name string,
	matchID string,
	kind notification.Kind,
	step func(*match.Match, time.Time) error,
) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService."+name)
	defer span.End()

	now := s.now().UTC()
	m, err := s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		return match.Mutation{}, step(m, now)
	})
	if err != nil {
		return match.Match{}, err
	}

	if m.Status.Counted() {
		s.refreshPoints(ctx, m)
	}
	s.notify(ctx, notification.Notice{Kind: kind, MatchID: m.ID, OccurredAt: now})
	return m, nil
}

// RecordGoal credits a goal to the given side and appends it to the ledger.
func (s *MatchService) RecordGoal(ctx context.Context, input GoalInput) (matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordGoal")
	defer span.End()

	side, err := matchevent.ParseSide(input.Side)
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return matchevent.Event{}, err
	}

	var event matchevent.Event
	m, err := s.mutate(ctx, input.MatchID, func(m *match.Match) (match.Mutation, error) {
		if err := m.ApplyGoal(side); err != nil {
			return match.Mutation{}, err
		}
		event, err = s.newEvent(*m, p, matchevent.TypeGoal, input.Minute)
		if err != nil {
			return match.Mutation{}, err
		}
		event.Side = side
		event.OwnGoal = input.OwnGoal
		if err := event.Validate(); err != nil {
			return match.Mutation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return match.Mutation{Append: []matchevent.Event{event}}, nil
	})
	if err != nil {
		return matchevent.Event{}, err
	}

	s.notify(ctx, notification.Notice{
		Kind:       notification.KindGoalScored,
		MatchID:    m.ID,
		TeamID:     m.TeamID(side),
		PlayerID:   p.ID,
		Attributes: map[string]string{"score": strconv.Itoa(m.Score.Home) + ":" + strconv.Itoa(m.Score.Away)},
		OccurredAt: event.OccurredAt,
	})
	return event, nil
}

// RecordCard books a card on the player's roster entry, appends it to the
// ledger and runs the suspension policy on the committed state. A yellow-red
// card voids the player's latest standalone yellow of this match.
func (s *MatchService) RecordCard(ctx context.Context, input CardInput) (CardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordCard")
	defer span.End()

	cardType, err := matchevent.ParseType(input.Type)
	if err != nil || !cardType.IsCard() {
		return CardResult{}, fmt.Errorf("%w: invalid card type %q", ErrInvalidInput, input.Type)
	}
	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return CardResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	p, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return CardResult{}, err
	}

	var result CardResult
	_, err = s.mutate(ctx, input.MatchID, func(m *match.Match) (match.Mutation, error) {
		side, err := m.SideOf(teamID)
		if err != nil {
			return match.Mutation{}, err
		}
		if err := m.ApplyCard(side, p.ID, cardType); err != nil {
			return match.Mutation{}, err
		}

		event, err := s.newEvent(*m, p, cardType, input.Minute)
		if err != nil {
			return match.Mutation{}, err
		}
		event.TeamID = teamID
		event.Side = side
		if err := event.Validate(); err != nil {
			return match.Mutation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		mut := match.Mutation{Append: []matchevent.Event{event}}
		if cardType == matchevent.TypeYellowRed {
			events, err := s.repos.Events.ListByMatch(ctx, m.ID)
			if err != nil {
				return match.Mutation{}, fmt.Errorf("list match events: %w", err)
			}
			if yellow, ok := matchevent.MostRecentYellow(events, p.ID); ok {
				m.Revert(yellow)
				mut.Remove = []string{yellow.ID}
				result.Voided = yellow.ID
			}
		}
		result.Event = event
		return mut, nil
	})
	if err != nil {
		return CardResult{}, err
	}

	if s.suspensions != nil {
		decision, _, err := s.suspensions.Evaluate(ctx, result.Event, p)
		result.Decision = decision
		if err != nil {
			s.logger.ErrorContext(ctx, "suspension evaluation failed after card commit",
				"match_id", result.Event.MatchID,
				"event_id", result.Event.ID,
				"player_id", p.ID,
				"error", err,
			)
			return result, fmt.Errorf("%w: evaluate suspension: %v", ErrInternal, err)
		}
	}

	s.notify(ctx, notification.Notice{
		Kind:       notification.KindCardIssued,
		MatchID:    result.Event.MatchID,
		TeamID:     teamID,
		PlayerID:   p.ID,
		Attributes: map[string]string{"card": string(cardType)},
		OccurredAt: result.Event.OccurredAt,
	})
	if result.Decision.Suspend {
		s.notify(ctx, notification.Notice{
			Kind:       notification.KindPlayerSuspended,
			MatchID:    result.Event.MatchID,
			TeamID:     teamID,
			PlayerID:   p.ID,
			Attributes: map[string]string{"block_date": result.Decision.BlockDate.Format(time.RFC3339)},
			OccurredAt: result.Event.OccurredAt,
		})
	}
	return result, nil
}

// DeleteEvent removes a ledger entry and reverses its score or counter
// change. Suspensions caused by a deleted card stay in place; they show up in
// SuspensionService.Reconcile.
func (s *MatchService) DeleteEvent(ctx context.Context, matchID, eventID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return match.Match{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	var deleted matchevent.Event
	m, err := s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		event, exists, err := s.repos.Events.GetByID(ctx, eventID)
		if err != nil {
			return match.Mutation{}, fmt.Errorf("get match event: %w", err)
		}
		if !exists || event.MatchID != m.ID {
			return match.Mutation{}, fmt.Errorf("%w: event=%s match=%s", ErrNotFound, eventID, m.ID)
		}
		m.Revert(event)
		deleted = event
		return match.Mutation{Remove: []string{event.ID}}, nil
	})
	if err != nil {
		return match.Match{}, err
	}

	if deleted.Type.IsCard() {
		s.logger.WarnContext(ctx, "card event deleted; suspension is not lifted automatically",
			"match_id", m.ID,
			"event_id", deleted.ID,
			"player_id", deleted.PlayerID,
			"card", string(deleted.Type),
		)
	}
	if m.Status.Counted() && deleted.Type == matchevent.TypeGoal {
		s.refreshPoints(ctx, m)
	}
	return m, nil
}

// Submit stores the referee report. The first submission settles the
// referee fee; a missing referee or hourly rate fails the settlement with
// ErrInternal while the submission itself stays recorded.
func (s *MatchService) Submit(ctx context.Context, matchID, report string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Submit")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, err := s.load(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if err := m.Submit(strings.TrimSpace(report)); err != nil {
		return match.Match{}, classify(err)
	}
	m, err = s.commit(ctx, m, match.Mutation{})
	if err != nil {
		return match.Match{}, err
	}

	settleErr := s.settleReferee(ctx, &m)
	if settleErr != nil {
		s.logger.ErrorContext(ctx, "referee settlement failed", "match_id", m.ID, "error", settleErr)
	}

	if m.Report != "" {
		if err := s.openCase(ctx, m); err != nil {
			s.logger.ErrorContext(ctx, "open disciplinary case failed", "match_id", m.ID, "error", err)
		}
	}

	s.refreshPoints(ctx, m)
	return m, settleErr
}

func (s *MatchService) settleReferee(ctx context.Context, m *match.Match) error {
	if m.Paid {
		return nil
	}
	if m.RefereeID == "" {
		return fmt.Errorf("%w: match=%s has no referee", ErrInternal, m.ID)
	}

	lg, err := s.leagueOf(ctx, *m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if lg.HourlyRate == nil || *lg.HourlyRate <= 0 {
		return fmt.Errorf("%w: league=%s has no hourly rate", ErrInternal, lg.ID)
	}

	charge := billing.Charge{
		ID:          "settlement-" + m.ID,
		AccountType: billing.AccountReferee,
		AccountID:   m.RefereeID,
		Kind:        billing.KindRefereeSettlement,
		AmountCents: *lg.HourlyRate,
		MatchID:     m.ID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repos.Billing.Debit(ctx, charge); err != nil {
		return fmt.Errorf("%w: debit referee: %v", ErrInternal, err)
	}

	m.Paid = true
	paid, err := s.commit(ctx, *m, match.Mutation{})
	if err != nil {
		return fmt.Errorf("%w: mark match paid: %v", ErrInternal, err)
	}
	*m = paid
	return nil
}

func (s *MatchService) openCase(ctx context.Context, m match.Match) error {
	_, exists, err := s.repos.Discipline.GetByMatch(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("get disciplinary case: %w", err)
	}
	if exists {
		return nil
	}

	caseID, err := s.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate case id: %w", err)
	}
	created, err := s.repos.Discipline.Open(ctx, discipline.Case{
		ID:       caseID,
		MatchID:  m.ID,
		Report:   m.Report,
		Status:   discipline.StatusOpen,
		OpenedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("open disciplinary case: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "disciplinary case opened", "match_id", m.ID, "case_id", caseID)
	}
	return nil
}

// Done finalizes the match from any status.
func (s *MatchService) Done(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Done")
	defer span.End()

	m, err := s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		m.Done()
		return match.Mutation{}, nil
	})
	if err != nil {
		return match.Match{}, err
	}
	s.refreshPoints(ctx, m)
	return m, nil
}

// Abort marks the match abandoned without touching the score.
func (s *MatchService) Abort(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Abort")
	defer span.End()

	m, err := s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		m.Abort()
		return match.Mutation{}, nil
	})
	if err != nil {
		return match.Match{}, err
	}
	s.refreshPoints(ctx, m)
	return m, nil
}

// NoShow cancels the match 6-0 for the side that showed up.
func (s *MatchService) NoShow(ctx context.Context, matchID, winningSide string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.NoShow")
	defer span.End()

	winner, err := matchevent.ParseSide(winningSide)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, err := s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		return match.Mutation{}, m.Forfeit(winner)
	})
	if err != nil {
		return match.Match{}, err
	}

	s.refreshPoints(ctx, m)
	s.notify(ctx, notification.Notice{
		Kind:       notification.KindMatchCancelled,
		MatchID:    m.ID,
		TeamID:     m.TeamID(winner.Opposite()),
		Attributes: map[string]string{"reason": "no_show"},
		OccurredAt: s.now().UTC(),
	})
	return m, nil
}

// TeamCancel cancels the match 6-0 for winningSide, counts the cancellation
// against the losing team and charges the escalating penalty. The fourth
// cancellation of a season is rejected without any change.
func (s *MatchService) TeamCancel(ctx context.Context, matchID, winningSide string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.TeamCancel")
	defer span.End()

	winner, err := matchevent.ParseSide(winningSide)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matchID = strings.TrimSpace(matchID)
	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, err := s.load(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if m.Status.Terminal() {
		return match.Match{}, classify(fmt.Errorf("%w: status=%s", match.ErrTerminalState, m.Status))
	}

	loserID := m.TeamID(winner.Opposite())
	loser, exists, err := s.repos.Teams.GetByID(ctx, loserID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, loserID)
	}

	season, exists, err := s.repos.Seasons.GetByID(ctx, m.SeasonID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: season=%s", ErrNotFound, m.SeasonID)
	}

	// The team counter tracks the primary season only. Other seasons are
	// counted from their booked penalties and leave the counter alone.
	var nth int
	if season.Primary {
		if !loser.CanCancel() {
			return match.Match{}, classify(fmt.Errorf("%w: team=%s cancellations=%d", team.ErrCancellationCapExceeded, loser.ID, loser.Cancellations))
		}
		nth, err = s.repos.Teams.IncrementCancellations(ctx, loser.ID)
		if err != nil {
			return match.Match{}, classify(fmt.Errorf("increment team cancellations: %w", err))
		}
	} else {
		counts, err := s.cancels.Count(ctx, season.ID, []string{loser.ID})
		if err != nil {
			return match.Match{}, fmt.Errorf("count season cancellations: %w", err)
		}
		if counts[loser.ID] >= team.MaxCancellations {
			return match.Match{}, classify(fmt.Errorf("%w: team=%s season=%s cancellations=%d", team.ErrCancellationCapExceeded, loser.ID, season.ID, counts[loser.ID]))
		}
		nth = counts[loser.ID] + 1
	}
	rollback := func() {
		if season.Primary {
			s.compensateCancellation(ctx, loser.ID)
		}
	}

	if err := m.Forfeit(winner); err != nil {
		rollback()
		return match.Match{}, classify(err)
	}
	m, err = s.commit(ctx, m, match.Mutation{})
	if err != nil {
		rollback()
		return match.Match{}, err
	}

	var chargeErr error
	penalty, err := team.CancellationPenalty(nth)
	if err == nil {
		err = s.repos.Billing.Debit(ctx, billing.Charge{
			ID:          "cancellation-" + m.ID,
			AccountType: billing.AccountTeam,
			AccountID:   loser.ID,
			Kind:        billing.KindCancellationPenalty,
			AmountCents: penalty,
			MatchID:     m.ID,
			Note:        fmt.Sprintf("cancellation %d of %d", nth, team.MaxCancellations),
			CreatedAt:   s.now().UTC(),
		})
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "cancellation penalty not charged", "match_id", m.ID, "team_id", loser.ID, "error", err)
		chargeErr = fmt.Errorf("%w: charge cancellation penalty: %v", ErrInternal, err)
	}

	s.refreshPoints(ctx, m)

	recipients := make([]string, 0, 2)
	if opponent, ok, err := s.repos.Teams.GetByID(ctx, m.TeamID(winner)); err == nil && ok && opponent.ContactEmail != "" {
		recipients = append(recipients, opponent.ContactEmail)
	}
	if m.RefereeID != "" {
		recipients = append(recipients, m.RefereeID)
	}
	s.notify(ctx, notification.Notice{
		Kind:       notification.KindMatchCancelled,
		MatchID:    m.ID,
		TeamID:     loser.ID,
		Recipients: recipients,
		Attributes: map[string]string{"reason": "team_cancel", "cancellation": strconv.Itoa(nth)},
		OccurredAt: s.now().UTC(),
	})

	s.logger.InfoContext(ctx, "match cancelled by team", "match_id", m.ID, "team_id", loser.ID, "cancellation", nth)
	return m, chargeErr
}

func (s *MatchService) compensateCancellation(ctx context.Context, teamID string) {
	if err := s.repos.Teams.DecrementCancellations(ctx, teamID); err != nil {
		s.logger.ErrorContext(ctx, "rollback team cancellation failed", "team_id", teamID, "error", err)
	}
}

// ResetGame rolls the match back to pending and clears its ledger.
func (s *MatchService) ResetGame(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResetGame")
	defer span.End()

	m, err := s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		m.Reset()
		return match.Mutation{ClearEvents: true}, nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.logger.WarnContext(ctx, "match reset; ledger cleared", "match_id", m.ID)
	s.refreshPoints(ctx, m)
	return m, nil
}

func (s *MatchService) ResetHalftime(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResetHalftime")
	defer span.End()

	return s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		return match.Mutation{}, m.ResetHalftime()
	})
}

// AddPlayer lists a player on a roster sheet. Players inside an open
// suspension window are rejected.
func (s *MatchService) AddPlayer(ctx context.Context, input RosterInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddPlayer")
	defer span.End()

	side, err := matchevent.ParseSide(input.Side)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Number < 0 || input.Number > 99 {
		return match.Match{}, fmt.Errorf("%w: shirt number must be within 0..99", ErrInvalidInput)
	}
	p, err := s.loadPlayer(ctx, input.PlayerID)
	if err != nil {
		return match.Match{}, err
	}
	if p.Blocked(s.now()) {
		return match.Match{}, fmt.Errorf("%w: player=%s is suspended until %s", ErrBusinessRule, p.ID, blockDateString(p))
	}

	number := p.Number
	if input.Number > 0 {
		number = input.Number
	}

	return s.mutate(ctx, input.MatchID, func(m *match.Match) (match.Mutation, error) {
		if p.TeamID != m.TeamID(side) {
			return match.Mutation{}, fmt.Errorf("%w: player=%s does not belong to team=%s", ErrInvalidInput, p.ID, m.TeamID(side))
		}
		return match.Mutation{}, m.AddPlayer(side, match.RosterEntry{PlayerID: p.ID, Name: p.Name, Number: number})
	})
}

func (s *MatchService) RemovePlayer(ctx context.Context, matchID, sideRaw, playerID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RemovePlayer")
	defer span.End()

	side, err := matchevent.ParseSide(sideRaw)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return match.Match{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	return s.mutate(ctx, matchID, func(m *match.Match) (match.Mutation, error) {
		return match.Mutation{}, m.RemovePlayer(side, playerID)
	})
}

// mutate loads the match under its lock, applies fn and commits the result
// together with the returned ledger mutation.
func (s *MatchService) mutate(ctx context.Context, matchID string, fn func(m *match.Match) (match.Mutation, error)) (out match.Match, err error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.mutate", attribute.String("match.id", matchID))
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, err := s.load(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	mut, err := fn(&m)
	if err != nil {
		return match.Match{}, classify(err)
	}
	return s.commit(ctx, m, mut)
}

func (s *MatchService) commit(ctx context.Context, m match.Match, mut match.Mutation) (match.Match, error) {
	m.UpdatedAt = s.now().UTC()
	committed, err := s.repos.Matches.Commit(ctx, m, mut)
	if err != nil {
		if errors.Is(err, match.ErrStaleVersion) {
			return match.Match{}, classify(err)
		}
		return match.Match{}, fmt.Errorf("commit match: %w", err)
	}
	return committed, nil
}

func (s *MatchService) load(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.repos.Matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) loadPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.repos.Players.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

func (s *MatchService) leagueOf(ctx context.Context, m match.Match) (league.League, error) {
	season, exists, err := s.repos.Seasons.GetByID(ctx, m.SeasonID)
	if err != nil {
		return league.League{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("season=%s not found", m.SeasonID)
	}

	lg, exists, err := s.repos.Leagues.GetByID(ctx, season.LeagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("league=%s not found", season.LeagueID)
	}
	return lg, nil
}

func (s *MatchService) newEvent(m match.Match, p player.Player, eventType matchevent.Type, minute int) (matchevent.Event, error) {
	eventID, err := s.ids.NewID()
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	number := p.Number
	for _, sheet := range []match.RosterSheet{m.Home, m.Away} {
		if entry, ok := sheet.Entry(p.ID); ok {
			number = entry.Number
			break
		}
	}

	return matchevent.Event{
		ID:       eventID,
		MatchID:  m.ID,
		SeasonID: m.SeasonID,
		PlayerID: p.ID,
		TeamID:   p.TeamID,
		Type:     eventType,
		Minute:   minute,
		Snapshot: matchevent.Snapshot{
			PlayerName: p.Name,
			Number:     number,
			ImageURL:   p.ImageURL,
		},
		OccurredAt: s.now().UTC(),
	}, nil
}

// refreshPoints re-projects team points for the match's league. Failures are
// logged; the lifecycle change is already committed.
func (s *MatchService) refreshPoints(ctx context.Context, m match.Match) {
	season, exists, err := s.repos.Seasons.GetByID(ctx, m.SeasonID)
	if err != nil || !exists {
		s.logger.WarnContext(ctx, "skip points refresh; season unavailable", "match_id", m.ID, "season_id", m.SeasonID, "error", err)
		return
	}
	if _, err := s.points.Refresh(ctx, season.LeagueID); err != nil {
		s.logger.ErrorContext(ctx, "refresh team points failed", "league_id", season.LeagueID, "match_id", m.ID, "error", err)
	}
}

func (s *MatchService) notify(ctx context.Context, notice notification.Notice) {
	s.notifier.Notify(context.WithoutCancel(ctx), notice)
}

func blockDateString(p player.Player) string {
	if p.BlockDate == nil {
		return "further notice"
	}
	return p.BlockDate.Format(time.RFC3339)
}
