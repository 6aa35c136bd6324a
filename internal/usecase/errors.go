package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrGameweekLocked        = errors.New("gameweek is locked")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// AlreadySignedUpError reports a claim by a player who already holds a slot
// in the gameweek. It carries the position they hold so callers can surface
// it.
type AlreadySignedUpError struct {
	PlayerID         string
	ExistingPosition int
}

func (e *AlreadySignedUpError) Error() string {
	return fmt.Sprintf("player %s already signed up at position %d", e.PlayerID, e.ExistingPosition)
}

func (e *AlreadySignedUpError) Unwrap() error { return ErrConflict }

// SlotTakenError reports a claim for a position another player won first.
type SlotTakenError struct {
	Position   int
	OccupantID string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("position %d already taken by player %s", e.Position, e.OccupantID)
}

func (e *SlotTakenError) Unwrap() error { return ErrConflict }
