package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/usecase"
)

type noticeAcceptedDTO struct {
	Kind    string `json:"kind"`
	MatchID string `json:"match_id"`
}

// ReceiveNotice is the QStash delivery target. Rendering and mailing the
// notice happens outside this service; here it is only acknowledged and logged.
func (h *Handler) ReceiveNotice(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReceiveNotice")
	defer span.End()

	var notice notification.Notice
	if err := h.decodeRequest(ctx, r, &notice, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind := strings.TrimSpace(r.PathValue("kind"))
	if kind != string(notice.Kind) {
		writeError(ctx, w, fmt.Errorf("%w: notice kind %q does not match path %q", usecase.ErrInvalidInput, notice.Kind, kind))
		return
	}

	h.logger.InfoContext(ctx, "notice received",
		"kind", notice.Kind,
		"match_id", notice.MatchID,
		"team_id", notice.TeamID,
		"player_id", notice.PlayerID,
		"recipients", len(notice.Recipients),
		"message_id", r.Header.Get("Upstash-Message-Id"),
	)
	writeSuccess(ctx, w, http.StatusAccepted, noticeAcceptedDTO{Kind: kind, MatchID: notice.MatchID})
}
