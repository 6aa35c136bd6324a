package player

import (
	"context"
	"errors"
)

// ErrDuplicateName reports a (first name, last name) uniqueness violation.
var ErrDuplicateName = errors.New("player name already exists")

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Create(ctx context.Context, firstName, lastName string) (Player, error)
	Update(ctx context.Context, playerID, firstName, lastName string) (Player, bool, error)
	Delete(ctx context.Context, playerID string) (bool, error)
}
