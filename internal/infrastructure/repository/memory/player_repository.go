package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kickaround/pickup-league/internal/domain/player"
)

// PlayerRepository is the in-memory player store used for tests and for
// running the API without a database.
type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player

	// rosters, when set, receives cascade deletes so roster entries do not
	// outlive their player.
	rosters *RosterRepository
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}
	return &PlayerRepository{items: items}
}

// AttachRosters wires the roster store for delete cascades.
func (r *PlayerRepository) AttachRosters(rosters *RosterRepository) {
	r.rosters = rosters
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (r *PlayerRepository) Create(_ context.Context, firstName, lastName string) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTakenLocked(firstName, lastName, "") {
		return player.Player{}, player.ErrDuplicateName
	}

	p := player.Player{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *PlayerRepository) Update(_ context.Context, playerID, firstName, lastName string) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	if r.nameTakenLocked(firstName, lastName, playerID) {
		return player.Player{}, false, player.ErrDuplicateName
	}

	p.FirstName = firstName
	p.LastName = lastName
	r.items[playerID] = p
	return p, true, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) (bool, error) {
	r.mu.Lock()
	_, ok := r.items[playerID]
	delete(r.items, playerID)
	r.mu.Unlock()

	if ok && r.rosters != nil {
		r.rosters.deleteByPlayer(ctx, playerID)
	}
	return ok, nil
}

func (r *PlayerRepository) nameTakenLocked(firstName, lastName, excludeID string) bool {
	for _, existing := range r.items {
		if existing.ID == excludeID {
			continue
		}
		if strings.EqualFold(existing.FirstName, firstName) && strings.EqualFold(existing.LastName, lastName) {
			return true
		}
	}
	return false
}
