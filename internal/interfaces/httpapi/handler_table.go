package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/kickaround/pickup-league/internal/usecase"
)

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	rows, err := h.tableService.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "league table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tableRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, tableRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// VerifyOrganiser lets the frontend check a PIN up front so it can unlock
// organiser controls before any gated call is made.
func (h *Handler) VerifyOrganiser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyOrganiser")
	defer span.End()

	var req verifyOrganiserRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.verifier.Verify(ctx, req.Pin); err != nil {
		h.logger.WarnContext(ctx, "organiser verify failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"valid": true})
}

type verifyOrganiserRequest struct {
	Pin string `json:"pin" validate:"required"`
}
