package gameweek

import (
	"fmt"
	"time"
)

// Status is the gameweek lifecycle state. The transition open -> locked is
// one-way.
type Status string

const (
	StatusOpen   Status = "open"
	StatusLocked Status = "locked"
)

// Gameweek is one instance of the weekly game. Scores and LockedAt are only
// present once the gameweek is locked; lock always writes both scores.
type Gameweek struct {
	ID          string
	GameDate    time.Time
	GameTime    string
	Location    string
	Status      Status
	DarksScore  *int
	WhitesScore *int
	LockedAt    *time.Time
	CreatedAt   time.Time
}

func (g Gameweek) IsOpen() bool {
	return g.Status == StatusOpen
}

// HasResult reports whether both final scores are recorded. A locked gameweek
// without scores should not happen, but aggregation skips it rather than
// inventing a result.
func (g Gameweek) HasResult() bool {
	return g.DarksScore != nil && g.WhitesScore != nil
}

func (g Gameweek) Validate() error {
	if g.GameDate.IsZero() {
		return fmt.Errorf("gameweek date is required")
	}
	switch g.Status {
	case StatusOpen, StatusLocked:
	default:
		return fmt.Errorf("invalid gameweek status: %s", g.Status)
	}

	return nil
}
