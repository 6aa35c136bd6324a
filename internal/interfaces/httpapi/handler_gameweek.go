package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/kickaround/pickup-league/internal/usecase"
)

func (h *Handler) CreateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameweek")
	defer span.End()

	var req createGameweekRequest
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

	gameDate, err := time.Parse(gameDateLayout, req.GameDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: gameDate must be formatted as %s", usecase.ErrInvalidInput, gameDateLayout))
		return
	}

	created, err := h.gameweekService.Create(ctx, usecase.CreateGameweekInput{
		GameDate: gameDate,
		GameTime: req.GameTime,
		Location: req.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create gameweek failed", "game_date", req.GameDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameweekToDTO(ctx, created))
}

func (h *Handler) LockGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockGameweek")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	var req lockGameweekRequest
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

	locked, err := h.gameweekService.Lock(ctx, usecase.LockGameweekInput{
		GameweekID:  gameweekID,
		DarksScore:  *req.DarksScore,
		WhitesScore: *req.WhitesScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "lock gameweek failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(ctx, locked))
}

func (h *Handler) GetGameOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameOverview")
	defer span.End()

	overview, err := h.gameweekService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "game overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := gameOverviewDTO{
		Entries: entriesToDTO(ctx, overview.Entries),
		Players: make([]playerDTO, 0, len(overview.Players)),
	}
	if overview.Gameweek != nil {
		gw := gameweekToDTO(ctx, *overview.Gameweek)
		dto.Gameweek = &gw
	}
	for _, p := range overview.Players {
		dto.Players = append(dto.Players, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) GetTeamsOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamsOverview")
	defer span.End()

	overview, err := h.gameweekService.Teams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "teams overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := teamsOverviewDTO{
		Darks:  entriesToDTO(ctx, overview.Darks),
		Whites: entriesToDTO(ctx, overview.Whites),
		Subs:   entriesToDTO(ctx, overview.Subs),
	}
	if overview.Gameweek != nil {
		gw := gameweekToDTO(ctx, *overview.Gameweek)
		dto.Gameweek = &gw
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	query := r.URL.Query()
	olderThan := strings.TrimSpace(query.Get("olderThan"))
	newerThan := strings.TrimSpace(query.Get("newerThan"))

	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	page, err := h.gameweekService.Results(ctx, olderThan, newerThan, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "older_than", olderThan, "newer_than", newerThan, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameweekDTO, 0, len(page.Items))
	for _, gw := range page.Items {
		items = append(items, gameweekToDTO(ctx, gw))
	}

	writeSuccess(ctx, w, http.StatusOK, resultsPageDTO{
		Items:       items,
		OlderCursor: page.OlderCursor,
		NewerCursor: page.NewerCursor,
	})
}

type createGameweekRequest struct {
	GameDate string `json:"gameDate" validate:"required"`
	GameTime string `json:"gameTime" validate:"max=20"`
	Location string `json:"location" validate:"max=200"`
}

type lockGameweekRequest struct {
	DarksScore  *int `json:"darksScore" validate:"required,gte=0"`
	WhitesScore *int `json:"whitesScore" validate:"required,gte=0"`
}

type gameOverviewDTO struct {
	Gameweek *gameweekDTO `json:"gameweek"`
	Entries  []entryDTO   `json:"entries"`
	Players  []playerDTO  `json:"players"`
}

type teamsOverviewDTO struct {
	Gameweek *gameweekDTO `json:"gameweek"`
	Darks    []entryDTO   `json:"darks"`
	Whites   []entryDTO   `json:"whites"`
	Subs     []entryDTO   `json:"subs"`
}

type resultsPageDTO struct {
	Items       []gameweekDTO `json:"items"`
	OlderCursor string        `json:"olderCursor,omitempty"`
	NewerCursor string        `json:"newerCursor,omitempty"`
}
