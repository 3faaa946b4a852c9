package httpapi

import (
	"net/http"

	"github.com/riskibarqy/amateur-league/internal/usecase"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	primaryOnly, err := parseBoolQuery(r, "primary_only", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	standings, err := h.standingService.ListByLeague(ctx, leagueID, primaryOnly)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboard")
	defer span.End()

	primaryOnly, err := parseBoolQuery(r, "primary_only", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	eventType := r.PathValue("eventType")
	entries, err := h.leaderboardService.List(ctx, usecase.LeaderboardQuery{
		LeagueID:    leagueID,
		Type:        eventType,
		PrimaryOnly: primaryOnly,
		From:        from,
		To:          to,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list leaderboard failed", "league_id", leagueID, "type", eventType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	entries, err := h.leaderboardService.TopScorers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) ReconcileSuspensions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcileSuspensions")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	orphaned, err := h.suspensionService.Reconcile(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile suspensions failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "suspension reconciliation finished", "league_id", leagueID, "orphaned", len(orphaned))
	writeSuccess(ctx, w, http.StatusOK, playersToDTO(orphaned))
}
