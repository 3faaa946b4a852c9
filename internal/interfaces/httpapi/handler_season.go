package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/amateur-league/internal/usecase"
)

type generateFixturesRequest struct {
	Rounds       int       `json:"rounds" validate:"required,min=1,max=4"`
	FirstGameday int       `json:"first_gameday" validate:"omitempty,min=1"`
	Start        time.Time `json:"start" validate:"required"`
	IntervalDays int       `json:"interval_days" validate:"omitempty,min=1,max=60"`
	Venue        string    `json:"venue" validate:"omitempty,max=200"`
}

func (h *Handler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtures")
	defer span.End()

	var req generateFixturesRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.FirstGameday == 0 {
		req.FirstGameday = 1
	}
	if req.IntervalDays == 0 {
		req.IntervalDays = 7
	}

	seasonID := r.PathValue("seasonID")
	matches, err := h.seasonService.GenerateFixtures(ctx, usecase.GenerateFixturesInput{
		SeasonID:     seasonID,
		Rounds:       req.Rounds,
		FirstGameday: req.FirstGameday,
		Start:        req.Start,
		Interval:     time.Duration(req.IntervalDays) * 24 * time.Hour,
		Venue:        req.Venue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchesToDTO(matches))
}

func (h *Handler) ListSeasonMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonMatches")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	matches, err := h.seasonService.ListMatches(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(matches))
}

func (h *Handler) TeardownSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeardownSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	if err := h.seasonService.Teardown(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "teardown season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
