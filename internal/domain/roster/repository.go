package roster

import (
	"context"
	"errors"
)

// ErrDuplicateEntry reports a uniqueness violation on insert. The store does
// not say which of the two constraints fired; callers disambiguate with the
// lookup reads below.
var ErrDuplicateEntry = errors.New("duplicate roster entry")

// Repository describes roster persistence needs from use cases.
type Repository interface {
	// Insert attempts the optimistic claim write. Returns ErrDuplicateEntry
	// when either the (gameweek, player) or (gameweek, position) constraint
	// fires.
	Insert(ctx context.Context, entry Entry) (Entry, error)
	GetByGameweekAndPlayer(ctx context.Context, gameweekID, playerID string) (Entry, bool, error)
	GetByGameweekAndPosition(ctx context.Context, gameweekID string, position int) (Entry, bool, error)
	// ListByGameweek returns the roster ordered by position ascending.
	ListByGameweek(ctx context.Context, gameweekID string) ([]Entry, error)
	// ListByGameweeks returns entries for all the given gameweeks, for
	// aggregation; no particular order.
	ListByGameweeks(ctx context.Context, gameweekIDs []string) ([]Entry, error)
	UpdateAssignment(ctx context.Context, gameweekID, playerID string, team Team, position *int) (bool, error)
	MarkRemoveRequested(ctx context.Context, gameweekID, playerID string) error
	Delete(ctx context.Context, gameweekID, playerID string) error
}
