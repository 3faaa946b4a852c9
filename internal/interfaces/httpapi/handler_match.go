package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type matchCommandRequest struct {
	Report      string `json:"report" validate:"omitempty,max=5000"`
	WinningSide string `json:"winning_side" validate:"omitempty,oneof=home away"`
}

type recordGoalRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Side     string `json:"side" validate:"required,oneof=home away"`
	Minute   int    `json:"minute" validate:"min=0,max=130"`
	OwnGoal  bool   `json:"own_goal"`
}

type recordCardRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	TeamID   string `json:"team_id" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=yellow red yellowred"`
	Minute   int    `json:"minute" validate:"min=0,max=130"`
}

type addRosterPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Number   int    `json:"number" validate:"omitempty,min=1,max=99"`
}

type matchCommand func(ctx context.Context, s *usecase.MatchService, matchID string, req matchCommandRequest) (match.Match, error)

// matchCommands maps the path segment of POST /v1/matches/{matchID}/{command}.
var matchCommands = map[string]matchCommand{
	"start-game": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.StartGame(ctx, id)
	},
	"end-first-half": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.EndFirstHalf(ctx, id)
	},
	"start-second-half": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.StartSecondHalf(ctx, id)
	},
	"end-game": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.EndGame(ctx, id)
	},
	"submit": func(ctx context.Context, s *usecase.MatchService, id string, req matchCommandRequest) (match.Match, error) {
		return s.Submit(ctx, id, req.Report)
	},
	"done": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.Done(ctx, id)
	},
	"abort": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.Abort(ctx, id)
	},
	"no-show": func(ctx context.Context, s *usecase.MatchService, id string, req matchCommandRequest) (match.Match, error) {
		return s.NoShow(ctx, id, req.WinningSide)
	},
	"team-cancel": func(ctx context.Context, s *usecase.MatchService, id string, req matchCommandRequest) (match.Match, error) {
		return s.TeamCancel(ctx, id, req.WinningSide)
	},
	"reset-game": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.ResetGame(ctx, id)
	},
	"reset-halftime": func(ctx context.Context, s *usecase.MatchService, id string, _ matchCommandRequest) (match.Match, error) {
		return s.ResetHalftime(ctx, id)
	},
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := r.PathValue("matchID")
	events, err := h.matchService.ListEvents(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RunMatchCommand(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(strings.TrimSpace(r.PathValue("command")))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMatchCommand",
		attribute.String("match.id", r.PathValue("matchID")),
		attribute.String("match.command", name),
	)
	defer span.End()

	command, ok := matchCommands[name]
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown match command %q", usecase.ErrNotFound, name))
		return
	}

	var req matchCommandRequest
	if err := h.decodeRequest(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	m, err := command(ctx, h.matchService, matchID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "match command failed", "match_id", matchID, "command", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGoal")
	defer span.End()

	var req recordGoalRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	event, err := h.matchService.RecordGoal(ctx, usecase.GoalInput{
		MatchID:  matchID,
		PlayerID: req.PlayerID,
		Side:     req.Side,
		Minute:   req.Minute,
		OwnGoal:  req.OwnGoal,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record goal failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(event))
}

func (h *Handler) RecordCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordCard")
	defer span.End()

	var req recordCardRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.matchService.RecordCard(ctx, usecase.CardInput{
		MatchID:  matchID,
		PlayerID: req.PlayerID,
		TeamID:   req.TeamID,
		Minute:   req.Minute,
		Type:     req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record card failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, cardResultToDTO(result))
}

func (h *Handler) DeleteMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchEvent")
	defer span.End()

	matchID := r.PathValue("matchID")
	eventID := r.PathValue("eventID")
	m, err := h.matchService.DeleteEvent(ctx, matchID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete match event failed", "match_id", matchID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) AddRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterPlayer")
	defer span.End()

	var req addRosterPlayerRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	m, err := h.matchService.AddPlayer(ctx, usecase.RosterInput{
		MatchID:  matchID,
		Side:     r.PathValue("side"),
		PlayerID: req.PlayerID,
		Number:   req.Number,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add roster player failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) RemoveRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterPlayer")
	defer span.End()

	matchID := r.PathValue("matchID")
	playerID := r.PathValue("playerID")
	m, err := h.matchService.RemovePlayer(ctx, matchID, r.PathValue("side"), playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove roster player failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}
