package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/platform/logging"
)

type AssignInput struct {
	GameweekID string
	PlayerID   string
	Team       roster.Team
	Position   *int
}

// RosterService owns sign-up sheet writes: slot claims, leaves, removal
// requests, and the organiser-side assign and kick operations.
type RosterService struct {
	rosterRepo   roster.Repository
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	logger       *logging.Logger
}

func NewRosterService(
	rosterRepo roster.Repository,
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RosterService{
		rosterRepo:   rosterRepo,
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		logger:       logger,
	}
}

// ClaimSlot writes the optimistic insert for position and disambiguates a
// uniqueness failure afterwards. The player check runs before the slot
// check: a double-tap from the same player reports their existing slot, not
// the occupant of the tapped one. Returns the created entry and the
// refreshed roster.
func (s *RosterService) ClaimSlot(ctx context.Context, gameweekID, playerID string, position int) (roster.Entry, []roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ClaimSlot")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	playerID = strings.TrimSpace(playerID)
	if gameweekID == "" {
		return roster.Entry{}, nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return roster.Entry{}, nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if !roster.ValidPosition(position) {
		return roster.Entry{}, nil, fmt.Errorf("%w: position must be between %d and %d", ErrInvalidInput, roster.MinPosition, roster.MaxPosition)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return roster.Entry{}, nil, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return roster.Entry{}, nil, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	if !gw.IsOpen() {
		return roster.Entry{}, nil, fmt.Errorf("%w: gameweek=%s", ErrGameweekLocked, gameweekID)
	}

	if _, exists, err = s.playerRepo.GetByID(ctx, playerID); err != nil {
		return roster.Entry{}, nil, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return roster.Entry{}, nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	created, err := s.rosterRepo.Insert(ctx, roster.Entry{
		GameweekID: gameweekID,
		PlayerID:   playerID,
		Team:       roster.TeamSubs,
		Position:   position,
	})
	if err != nil {
		if !errors.Is(err, roster.ErrDuplicateEntry) {
			return roster.Entry{}, nil, fmt.Errorf("insert roster entry: %w", err)
		}
		return roster.Entry{}, nil, s.classifyClaimConflict(ctx, gameweekID, playerID, position)
	}

	entries, err := s.rosterRepo.ListByGameweek(ctx, gameweekID)
	if err != nil {
		return roster.Entry{}, nil, fmt.Errorf("list roster after claim: %w", err)
	}

	s.logger.InfoContext(ctx, "slot claimed",
		"gameweek_id", gameweekID,
		"player_id", playerID,
		"position", position,
	)

	return created, entries, nil
}

// classifyClaimConflict resolves which uniqueness constraint rejected the
// claim insert. Both lookups can miss when the competing entry was removed
// between the insert and the reads; that still surfaces as a conflict.
func (s *RosterService) classifyClaimConflict(ctx context.Context, gameweekID, playerID string, position int) error {
	existing, exists, err := s.rosterRepo.GetByGameweekAndPlayer(ctx, gameweekID, playerID)
	if err != nil {
		return fmt.Errorf("check existing sign-up: %w", err)
	}
	if exists {
		return &AlreadySignedUpError{PlayerID: playerID, ExistingPosition: existing.Position}
	}

	occupant, exists, err := s.rosterRepo.GetByGameweekAndPosition(ctx, gameweekID, position)
	if err != nil {
		return fmt.Errorf("check occupied position: %w", err)
	}
	if exists {
		return &SlotTakenError{Position: position, OccupantID: occupant.PlayerID}
	}

	return fmt.Errorf("%w: failed to claim position %d", ErrConflict, position)
}

// Leave removes the player's entry from an open gameweek.
func (s *RosterService) Leave(ctx context.Context, gameweekID, playerID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Leave")
	defer span.End()

	entries, err := s.removeEntry(ctx, gameweekID, playerID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player left gameweek",
		"gameweek_id", gameweekID,
		"player_id", playerID,
	)
	return entries, nil
}

// Kick removes another player's entry from an open gameweek. Callers gate
// this behind organiser authorization.
func (s *RosterService) Kick(ctx context.Context, gameweekID, playerID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Kick")
	defer span.End()

	entries, err := s.removeEntry(ctx, gameweekID, playerID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player kicked from gameweek",
		"gameweek_id", gameweekID,
		"player_id", playerID,
	)
	return entries, nil
}

func (s *RosterService) removeEntry(ctx context.Context, gameweekID, playerID string) ([]roster.Entry, error) {
	gameweekID = strings.TrimSpace(gameweekID)
	playerID = strings.TrimSpace(playerID)
	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	if !gw.IsOpen() {
		return nil, fmt.Errorf("%w: gameweek=%s", ErrGameweekLocked, gameweekID)
	}

	if _, exists, err = s.rosterRepo.GetByGameweekAndPlayer(ctx, gameweekID, playerID); err != nil {
		return nil, fmt.Errorf("get roster entry: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player %s is not signed up for gameweek %s", ErrNotFound, playerID, gameweekID)
	}

	if err := s.rosterRepo.Delete(ctx, gameweekID, playerID); err != nil {
		return nil, fmt.Errorf("delete roster entry: %w", err)
	}

	entries, err := s.rosterRepo.ListByGameweek(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("list roster after removal: %w", err)
	}
	return entries, nil
}

// RequestRemoval flags the player's entry for the organiser to action. It
// works on locked gameweeks too: the common case is a player dropping out
// after teams were settled.
func (s *RosterService) RequestRemoval(ctx context.Context, gameweekID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RequestRemoval")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	playerID = strings.TrimSpace(playerID)
	if gameweekID == "" {
		return fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	if _, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID); err != nil {
		return fmt.Errorf("get gameweek: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}

	if _, exists, err := s.rosterRepo.GetByGameweekAndPlayer(ctx, gameweekID, playerID); err != nil {
		return fmt.Errorf("get roster entry: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player %s is not signed up for gameweek %s", ErrNotFound, playerID, gameweekID)
	}

	if err := s.rosterRepo.MarkRemoveRequested(ctx, gameweekID, playerID); err != nil {
		return fmt.Errorf("mark remove requested: %w", err)
	}

	s.logger.InfoContext(ctx, "removal requested",
		"gameweek_id", gameweekID,
		"player_id", playerID,
	)
	return nil
}

// Assign moves a signed-up player between darks, whites and subs. Team
// sizes are capped; moving a player within their current team never hits
// the cap.
func (s *RosterService) Assign(ctx context.Context, input AssignInput) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Assign")
	defer span.End()

	gameweekID := strings.TrimSpace(input.GameweekID)
	playerID := strings.TrimSpace(input.PlayerID)
	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if !roster.ValidTeam(input.Team) {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, input.Team)
	}
	if input.Position != nil && !roster.ValidPosition(*input.Position) {
		return nil, fmt.Errorf("%w: position must be between %d and %d", ErrInvalidInput, roster.MinPosition, roster.MaxPosition)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	if !gw.IsOpen() {
		return nil, fmt.Errorf("%w: gameweek=%s", ErrGameweekLocked, gameweekID)
	}

	current, exists, err := s.rosterRepo.GetByGameweekAndPlayer(ctx, gameweekID, playerID)
	if err != nil {
		return nil, fmt.Errorf("get roster entry: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: player %s is not signed up for gameweek %s", ErrNotFound, playerID, gameweekID)
	}

	if current.Team != input.Team {
		entries, err := s.rosterRepo.ListByGameweek(ctx, gameweekID)
		if err != nil {
			return nil, fmt.Errorf("list roster for team check: %w", err)
		}
		count := 0
		for _, e := range entries {
			if e.Team == input.Team {
				count++
			}
		}
		if limit := roster.TeamLimits[input.Team]; count >= limit {
			return nil, fmt.Errorf("%w: team %s is full (%d players)", ErrConflict, input.Team, limit)
		}
	}

	found, err := s.rosterRepo.UpdateAssignment(ctx, gameweekID, playerID, input.Team, input.Position)
	if err != nil {
		if errors.Is(err, roster.ErrDuplicateEntry) && input.Position != nil {
			occupant, exists, lookupErr := s.rosterRepo.GetByGameweekAndPosition(ctx, gameweekID, *input.Position)
			if lookupErr != nil {
				return nil, fmt.Errorf("check occupied position: %w", lookupErr)
			}
			if exists {
				return nil, &SlotTakenError{Position: *input.Position, OccupantID: occupant.PlayerID}
			}
			return nil, fmt.Errorf("%w: failed to move player to position %d", ErrConflict, *input.Position)
		}
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: player %s is not signed up for gameweek %s", ErrNotFound, playerID, gameweekID)
	}

	entries, err := s.rosterRepo.ListByGameweek(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("list roster after assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "player assigned",
		"gameweek_id", gameweekID,
		"player_id", playerID,
		"team", string(input.Team),
	)
	return entries, nil
}

// Entries returns the sign-up sheet for a gameweek ordered by position.
func (s *RosterService) Entries(ctx context.Context, gameweekID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Entries")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	if _, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID); err != nil {
		return nil, fmt.Errorf("get gameweek: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}

	entries, err := s.rosterRepo.ListByGameweek(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return entries, nil
}
