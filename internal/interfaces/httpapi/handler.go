package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/domain/standings"
	"github.com/kickaround/pickup-league/internal/platform/logging"
	"github.com/kickaround/pickup-league/internal/usecase"
)

const gameDateLayout = "2006-01-02"

type Handler struct {
	gameweekService *usecase.GameweekService
	rosterService   *usecase.RosterService
	playerService   *usecase.PlayerService
	tableService    *usecase.TableService
	verifier        usecase.OrganiserVerifier
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	gameweekService *usecase.GameweekService,
	rosterService *usecase.RosterService,
	playerService *usecase.PlayerService,
	tableService *usecase.TableService,
	verifier usecase.OrganiserVerifier,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameweekService: gameweekService,
		rosterService:   rosterService,
		playerService:   playerService,
		tableService:    tableService,
		verifier:        verifier,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type gameweekDTO struct {
	ID          string  `json:"id"`
	GameDate    string  `json:"gameDate"`
	GameTime    string  `json:"gameTime"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	DarksScore  *int    `json:"darksScore"`
	WhitesScore *int    `json:"whitesScore"`
	LockedAtUTC *string `json:"lockedAtUtc"`
}

type entryDTO struct {
	ID              string `json:"id"`
	GameweekID      string `json:"gameweekId"`
	PlayerID        string `json:"playerId"`
	PlayerFirstName string `json:"playerFirstName"`
	PlayerLastName  string `json:"playerLastName"`
	Team            string `json:"team"`
	Position        int    `json:"position"`
	RemoveRequested bool   `json:"removeRequested"`
}

type playerDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type tableRowDTO struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Played   int     `json:"played"`
	Wins     int     `json:"wins"`
	Draws    int     `json:"draws"`
	Losses   int     `json:"losses"`
	WinPct   float64 `json:"winPct"`
}

func gameweekToDTO(ctx context.Context, v gameweek.Gameweek) gameweekDTO {
	ctx, span := startSpan(ctx, "httpapi.gameweekToDTO")
	defer span.End()

	dto := gameweekDTO{
		ID:          v.ID,
		GameDate:    v.GameDate.Format(gameDateLayout),
		GameTime:    v.GameTime,
		Location:    v.Location,
		Status:      string(v.Status),
		DarksScore:  v.DarksScore,
		WhitesScore: v.WhitesScore,
	}
	if v.LockedAt != nil {
		lockedAt := v.LockedAt.UTC().Format(time.RFC3339)
		dto.LockedAtUTC = &lockedAt
	}

	return dto
}

func entryToDTO(ctx context.Context, v roster.Entry) entryDTO {
	ctx, span := startSpan(ctx, "httpapi.entryToDTO")
	defer span.End()

	return entryDTO{
		ID:              v.ID,
		GameweekID:      v.GameweekID,
		PlayerID:        v.PlayerID,
		PlayerFirstName: v.PlayerFirstName,
		PlayerLastName:  v.PlayerLastName,
		Team:            string(v.Team),
		Position:        v.Position,
		RemoveRequested: v.RemoveRequested,
	}
}

func entriesToDTO(ctx context.Context, entries []roster.Entry) []entryDTO {
	ctx, span := startSpan(ctx, "httpapi.entriesToDTO")
	defer span.End()

	items := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryToDTO(ctx, entry))
	}
	return items
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:        v.ID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
	}
}

func tableRowToDTO(ctx context.Context, v standings.Row) tableRowDTO {
	ctx, span := startSpan(ctx, "httpapi.tableRowToDTO")
	defer span.End()

	return tableRowDTO{
		PlayerID: v.PlayerID,
		Name:     v.Name,
		Played:   v.Played,
		Wins:     v.Wins,
		Draws:    v.Draws,
		Losses:   v.Losses,
		WinPct:   v.WinPct,
	}
}
