package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/platform/logging"
)

// PlayerService owns the organiser-managed player pool. Renames and deletes
// reach into past league tables, so pool writes invalidate the cached table.
type PlayerService struct {
	playerRepo player.Repository
	tableCache leagueTableInvalidator
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, tableCache leagueTableInvalidator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PlayerService{playerRepo: playerRepo, tableCache: tableCache, logger: logger}
}

func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) Create(ctx context.Context, firstName, lastName string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if err := (player.Player{FirstName: firstName, LastName: lastName}).Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	created, err := s.playerRepo.Create(ctx, firstName, lastName)
	if err != nil {
		if errors.Is(err, player.ErrDuplicateName) {
			return player.Player{}, fmt.Errorf("%w: player %s %s already exists", ErrConflict, firstName, lastName)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	if s.tableCache != nil {
		s.tableCache.Invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", created.ID)
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, playerID, firstName, lastName string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := (player.Player{FirstName: firstName, LastName: lastName}).Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	updated, exists, err := s.playerRepo.Update(ctx, playerID, firstName, lastName)
	if err != nil {
		if errors.Is(err, player.ErrDuplicateName) {
			return player.Player{}, fmt.Errorf("%w: player %s %s already exists", ErrConflict, firstName, lastName)
		}
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	// Table rows carry player names.
	if s.tableCache != nil {
		s.tableCache.Invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", playerID)
	return updated, nil
}

// Delete removes a player. Past roster entries go with them, so career
// stats disappear from the league table too.
func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	// The cascade just removed the player's roster entries.
	if s.tableCache != nil {
		s.tableCache.Invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)
	return nil
}
