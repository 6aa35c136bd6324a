package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kickaround/pickup-league/internal/domain/roster"
)

// RosterRepository is the in-memory roster store. It enforces both claim
// constraints: one entry per (gameweek, player) and one per
// (gameweek, position).
type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Entry

	players *PlayerRepository
}

func NewRosterRepository(players *PlayerRepository) *RosterRepository {
	r := &RosterRepository{
		items:   make(map[string]roster.Entry),
		players: players,
	}
	if players != nil {
		players.AttachRosters(r)
	}
	return r
}

func (r *RosterRepository) Insert(ctx context.Context, entry roster.Entry) (roster.Entry, error) {
	r.mu.Lock()
	for _, existing := range r.items {
		if existing.GameweekID != entry.GameweekID {
			continue
		}
		if existing.PlayerID == entry.PlayerID || existing.Position == entry.Position {
			r.mu.Unlock()
			return roster.Entry{}, roster.ErrDuplicateEntry
		}
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	r.items[entry.ID] = entry
	r.mu.Unlock()

	return r.withPlayerName(ctx, entry), nil
}

func (r *RosterRepository) GetByGameweekAndPlayer(ctx context.Context, gameweekID, playerID string) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.items {
		if entry.GameweekID == gameweekID && entry.PlayerID == playerID {
			return r.withPlayerName(ctx, entry), true, nil
		}
	}
	return roster.Entry{}, false, nil
}

func (r *RosterRepository) GetByGameweekAndPosition(ctx context.Context, gameweekID string, position int) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.items {
		if entry.GameweekID == gameweekID && entry.Position == position {
			return r.withPlayerName(ctx, entry), true, nil
		}
	}
	return roster.Entry{}, false, nil
}

func (r *RosterRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]roster.Entry, error) {
	return r.ListByGameweeks(ctx, []string{gameweekID})
}

func (r *RosterRepository) ListByGameweeks(ctx context.Context, gameweekIDs []string) ([]roster.Entry, error) {
	wanted := make(map[string]struct{}, len(gameweekIDs))
	for _, id := range gameweekIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0, len(r.items))
	for _, entry := range r.items {
		if _, ok := wanted[entry.GameweekID]; ok {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameweekID != out[j].GameweekID {
			return out[i].GameweekID < out[j].GameweekID
		}
		return out[i].Position < out[j].Position
	})
	for i := range out {
		out[i] = r.withPlayerName(ctx, out[i])
	}
	return out, nil
}

func (r *RosterRepository) UpdateAssignment(_ context.Context, gameweekID, playerID string, team roster.Team, position *int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var targetID string
	for id, entry := range r.items {
		if entry.GameweekID == gameweekID && entry.PlayerID == playerID {
			targetID = id
			break
		}
	}
	if targetID == "" {
		return false, nil
	}

	if position != nil {
		for id, entry := range r.items {
			if id != targetID && entry.GameweekID == gameweekID && entry.Position == *position {
				return false, roster.ErrDuplicateEntry
			}
		}
	}

	entry := r.items[targetID]
	entry.Team = team
	if position != nil {
		entry.Position = *position
	}
	r.items[targetID] = entry
	return true, nil
}

func (r *RosterRepository) MarkRemoveRequested(_ context.Context, gameweekID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.items {
		if entry.GameweekID == gameweekID && entry.PlayerID == playerID {
			entry.RemoveRequested = true
			r.items[id] = entry
			return nil
		}
	}
	return nil
}

func (r *RosterRepository) Delete(_ context.Context, gameweekID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.items {
		if entry.GameweekID == gameweekID && entry.PlayerID == playerID {
			delete(r.items, id)
			return nil
		}
	}
	return nil
}

func (r *RosterRepository) deleteByPlayer(_ context.Context, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.items {
		if entry.PlayerID == playerID {
			delete(r.items, id)
		}
	}
}

// withPlayerName fills the denormalized name fields the SQL store joins in.
func (r *RosterRepository) withPlayerName(ctx context.Context, entry roster.Entry) roster.Entry {
	if r.players == nil {
		return entry
	}
	p, ok, _ := r.players.GetByID(ctx, entry.PlayerID)
	if ok {
		entry.PlayerFirstName = p.FirstName
		entry.PlayerLastName = p.LastName
	}
	return entry
}
