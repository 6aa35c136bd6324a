package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/usecase"
)

func (h *Handler) ListGameweekEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweekEntries")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	entries, err := h.rosterService.Entries(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list entries failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entriesToDTO(ctx, entries))
}

func (h *Handler) ClaimSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimSlot")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req claimSlotRequest
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

	entry, entries, err := h.rosterService.ClaimSlot(ctx, gameweekID, req.PlayerID, req.Position)
	if err != nil {
		h.logger.WarnContext(ctx, "claim slot failed", "gameweek_id", gameweekID, "player_id", req.PlayerID, "position", req.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, claimSlotDTO{
		Entry:  entryToDTO(ctx, entry),
		Roster: entriesToDTO(ctx, entries),
	})
}

func (h *Handler) LeaveSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveSlot")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req rosterPlayerRequest
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

	entries, err := h.rosterService.Leave(ctx, gameweekID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "leave slot failed", "gameweek_id", gameweekID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entriesToDTO(ctx, entries))
}

func (h *Handler) RequestRemoval(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestRemoval")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req rosterPlayerRequest
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

	if err := h.rosterService.RequestRemoval(ctx, gameweekID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "request removal failed", "gameweek_id", gameweekID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"removeRequested": true})
}

func (h *Handler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignSlot")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req assignSlotRequest
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

	entries, err := h.rosterService.Assign(ctx, usecase.AssignInput{
		GameweekID: gameweekID,
		PlayerID:   req.PlayerID,
		Team:       roster.Team(req.Team),
		Position:   req.Position,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign slot failed", "gameweek_id", gameweekID, "player_id", req.PlayerID, "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entriesToDTO(ctx, entries))
}

func (h *Handler) KickPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.KickPlayer")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req rosterPlayerRequest
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

	entries, err := h.rosterService.Kick(ctx, gameweekID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "kick player failed", "gameweek_id", gameweekID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entriesToDTO(ctx, entries))
}

type claimSlotRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Position int    `json:"position" validate:"required"`
}

type rosterPlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type assignSlotRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Team     string `json:"team" validate:"required,oneof=darks whites subs"`
	Position *int   `json:"position"`
}

type claimSlotDTO struct {
	Entry  entryDTO   `json:"entry"`
	Roster []entryDTO `json:"roster"`
}
