package gameweek

import (
	"context"
	"errors"
	"time"
)

// ErrOpenGameweekExists reports the store-side single-open-gameweek
// constraint firing on insert.
var ErrOpenGameweekExists = errors.New("an open gameweek already exists")

// Repository describes gameweek persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gameweekID string) (Gameweek, bool, error)
	GetOpen(ctx context.Context) (Gameweek, bool, error)
	LatestLocked(ctx context.Context) (Gameweek, bool, error)
	ListLocked(ctx context.Context) ([]Gameweek, error)
	Create(ctx context.Context, gw Gameweek) (Gameweek, error)
	Lock(ctx context.Context, gameweekID string, darksScore, whitesScore int, lockedAt time.Time) error
}
