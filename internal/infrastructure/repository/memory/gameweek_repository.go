package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
)

// GameweekRepository is the in-memory gameweek store. It enforces the same
// single-open-gameweek rule the database owns in production.
type GameweekRepository struct {
	mu    sync.RWMutex
	items map[string]gameweek.Gameweek
	now   func() time.Time
}

func NewGameweekRepository(gameweeks []gameweek.Gameweek) *GameweekRepository {
	items := make(map[string]gameweek.Gameweek, len(gameweeks))
	for _, gw := range gameweeks {
		items[gw.ID] = gw
	}
	return &GameweekRepository{items: items, now: time.Now}
}

func (r *GameweekRepository) GetByID(_ context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.items[gameweekID]
	if !ok {
		return gameweek.Gameweek{}, false, nil
	}
	return gw, true, nil
}

func (r *GameweekRepository) GetOpen(_ context.Context) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, gw := range r.items {
		if gw.Status == gameweek.StatusOpen {
			return gw, true, nil
		}
	}
	return gameweek.Gameweek{}, false, nil
}

func (r *GameweekRepository) LatestLocked(ctx context.Context) (gameweek.Gameweek, bool, error) {
	locked, err := r.ListLocked(ctx)
	if err != nil || len(locked) == 0 {
		return gameweek.Gameweek{}, false, err
	}
	return locked[0], true, nil
}

// ListLocked returns locked gameweeks newest first.
func (r *GameweekRepository) ListLocked(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, gw := range r.items {
		if gw.Status == gameweek.StatusLocked {
			out = append(out, gw)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.After(out[j].GameDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GameweekRepository) Create(_ context.Context, gw gameweek.Gameweek) (gameweek.Gameweek, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gw.Status == gameweek.StatusOpen {
		for _, existing := range r.items {
			if existing.Status == gameweek.StatusOpen {
				return gameweek.Gameweek{}, gameweek.ErrOpenGameweekExists
			}
		}
	}

	if gw.ID == "" {
		gw.ID = uuid.NewString()
	}
	if gw.CreatedAt.IsZero() {
		gw.CreatedAt = r.now().UTC()
	}
	r.items[gw.ID] = gw
	return gw, nil
}

func (r *GameweekRepository) Lock(_ context.Context, gameweekID string, darksScore, whitesScore int, lockedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gw, ok := r.items[gameweekID]
	if !ok || gw.Status != gameweek.StatusOpen {
		return nil
	}

	gw.Status = gameweek.StatusLocked
	gw.DarksScore = &darksScore
	gw.WhitesScore = &whitesScore
	gw.LockedAt = &lockedAt
	r.items[gameweekID] = gw
	return nil
}
