package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/infrastructure/repository/memory"
)

func newRosterFixture(t *testing.T) (*RosterService, *memory.GameweekRepository, gameweek.Gameweek) {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository(playerRepo)
	gameweekRepo := memory.NewGameweekRepository(nil)

	open, err := gameweekRepo.Create(context.Background(), gameweek.Gameweek{
		GameDate: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		GameTime: "19:00",
		Location: "Victoria Park",
		Status:   gameweek.StatusOpen,
	})
	if err != nil {
		t.Fatalf("create open gameweek: %v", err)
	}

	service := NewRosterService(rosterRepo, gameweekRepo, playerRepo, nil)
	return service, gameweekRepo, open
}

func TestRosterService_ClaimSlot(t *testing.T) {
	t.Parallel()

	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	entry, entries, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3)
	if err != nil {
		t.Fatalf("ClaimSlot error: %v", err)
	}
	if entry.Position != 3 || entry.Team != roster.TeamSubs {
		t.Fatalf("unexpected claimed entry: %+v", entry)
	}
	if entry.PlayerFirstName != "Dave" || entry.PlayerLastName != "Smith" {
		t.Fatalf("expected player name on entry, got %+v", entry)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 roster entry, got %d", len(entries))
	}
}

func TestRosterService_ClaimSlot_RejectsInvalidPositionBeforeReads(t *testing.T) {
	t.Parallel()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository(playerRepo)
	service := NewRosterService(rosterRepo, failingGameweekRepo{}, playerRepo, nil)

	for _, position := range []int{0, 19, -1} {
		if _, _, err := service.ClaimSlot(context.Background(), "gw", "p-dave-smith", position); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("position %d: expected invalid input, got %v", position, err)
		}
	}
}

func TestRosterService_ClaimSlot_DoubleSignupReportsExistingPosition(t *testing.T) {
	t.Parallel()

	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); err != nil {
		t.Fatalf("first claim error: %v", err)
	}

	_, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 7)
	var signedUp *AlreadySignedUpError
	if !errors.As(err, &signedUp) {
		t.Fatalf("expected AlreadySignedUpError, got %v", err)
	}
	if signedUp.ExistingPosition != 3 {
		t.Fatalf("expected existing position 3, got %d", signedUp.ExistingPosition)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict classification, got %v", err)
	}
}

func TestRosterService_ClaimSlot_TakenSlotReportsOccupant(t *testing.T) {
	t.Parallel()

	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); err != nil {
		t.Fatalf("first claim error: %v", err)
	}

	_, _, err := service.ClaimSlot(ctx, open.ID, "p-jim-jones", 3)
	var taken *SlotTakenError
	if !errors.As(err, &taken) {
		t.Fatalf("expected SlotTakenError, got %v", err)
	}
	if taken.OccupantID != "p-dave-smith" || taken.Position != 3 {
		t.Fatalf("unexpected slot conflict: %+v", taken)
	}
}

func TestRosterService_ClaimSlot_PlayerCheckWinsOverSlotCheck(t *testing.T) {
	t.Parallel()

	// A player re-tapping a slot someone else now holds is "already signed
	// up", not "slot taken".
	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); err != nil {
		t.Fatalf("first claim error: %v", err)
	}
	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-jim-jones", 5); err != nil {
		t.Fatalf("second claim error: %v", err)
	}

	_, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 5)
	var signedUp *AlreadySignedUpError
	if !errors.As(err, &signedUp) {
		t.Fatalf("expected AlreadySignedUpError, got %v", err)
	}
}

func TestRosterService_ClaimSlot_LockedGameweekRejected(t *testing.T) {
	t.Parallel()

	service, gameweekRepo, open := newRosterFixture(t)
	ctx := context.Background()

	if err := gameweekRepo.Lock(ctx, open.ID, 3, 1, time.Now().UTC()); err != nil {
		t.Fatalf("lock gameweek: %v", err)
	}

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); !errors.Is(err, ErrGameweekLocked) {
		t.Fatalf("expected locked rejection, got %v", err)
	}
}

func TestRosterService_ClaimSlot_UnknownGameweekAndPlayer(t *testing.T) {
	t.Parallel()

	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, "missing", "p-dave-smith", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown gameweek, got %v", err)
	}
	if _, _, err := service.ClaimSlot(ctx, open.ID, "missing", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown player, got %v", err)
	}
}

func TestRosterService_LeaveAndKick(t *testing.T) {
	t.Parallel()

	service, gameweekRepo, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); err != nil {
		t.Fatalf("claim error: %v", err)
	}
	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-jim-jones", 4); err != nil {
		t.Fatalf("claim error: %v", err)
	}

	entries, err := service.Leave(ctx, open.ID, "p-dave-smith")
	if err != nil {
		t.Fatalf("Leave error: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerID != "p-jim-jones" {
		t.Fatalf("unexpected roster after leave: %+v", entries)
	}

	if _, err := service.Leave(ctx, open.ID, "p-dave-smith"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for repeated leave, got %v", err)
	}

	entries, err = service.Kick(ctx, open.ID, "p-jim-jones")
	if err != nil {
		t.Fatalf("Kick error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty roster after kick, got %+v", entries)
	}

	if err := gameweekRepo.Lock(ctx, open.ID, 2, 2, time.Now().UTC()); err != nil {
		t.Fatalf("lock gameweek: %v", err)
	}
	if _, err := service.Leave(ctx, open.ID, "p-jim-jones"); !errors.Is(err, ErrGameweekLocked) {
		t.Fatalf("expected locked rejection, got %v", err)
	}
}

func TestRosterService_RequestRemoval_WorksOnLockedGameweek(t *testing.T) {
	t.Parallel()

	service, gameweekRepo, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); err != nil {
		t.Fatalf("claim error: %v", err)
	}
	if err := gameweekRepo.Lock(ctx, open.ID, 1, 0, time.Now().UTC()); err != nil {
		t.Fatalf("lock gameweek: %v", err)
	}

	if err := service.RequestRemoval(ctx, open.ID, "p-dave-smith"); err != nil {
		t.Fatalf("RequestRemoval error: %v", err)
	}

	entries, err := service.Entries(ctx, open.ID)
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 1 || !entries[0].RemoveRequested {
		t.Fatalf("expected remove_requested flag set, got %+v", entries)
	}
}

func TestRosterService_Assign_TeamLimits(t *testing.T) {
	t.Parallel()

	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	players := memory.SeedPlayers()
	for i := 0; i < 8; i++ {
		if _, _, err := service.ClaimSlot(ctx, open.ID, players[i].ID, i+1); err != nil {
			t.Fatalf("claim for %s: %v", players[i].ID, err)
		}
	}

	for i := 0; i < 7; i++ {
		if _, err := service.Assign(ctx, AssignInput{
			GameweekID: open.ID,
			PlayerID:   players[i].ID,
			Team:       roster.TeamDarks,
		}); err != nil {
			t.Fatalf("assign %s to darks: %v", players[i].ID, err)
		}
	}

	if _, err := service.Assign(ctx, AssignInput{
		GameweekID: open.ID,
		PlayerID:   players[7].ID,
		Team:       roster.TeamDarks,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected team full conflict, got %v", err)
	}

	// Reassigning a player already on the team is exempt from the cap.
	entries, err := service.Assign(ctx, AssignInput{
		GameweekID: open.ID,
		PlayerID:   players[0].ID,
		Team:       roster.TeamDarks,
	})
	if err != nil {
		t.Fatalf("same-team reassign error: %v", err)
	}

	darks := 0
	for _, e := range entries {
		if e.Team == roster.TeamDarks {
			darks++
		}
	}
	if darks != 7 {
		t.Fatalf("expected 7 darks, got %d", darks)
	}
}

func TestRosterService_Assign_PositionConflict(t *testing.T) {
	t.Parallel()

	service, _, open := newRosterFixture(t)
	ctx := context.Background()

	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-dave-smith", 3); err != nil {
		t.Fatalf("claim error: %v", err)
	}
	if _, _, err := service.ClaimSlot(ctx, open.ID, "p-jim-jones", 4); err != nil {
		t.Fatalf("claim error: %v", err)
	}

	target := 3
	_, err := service.Assign(ctx, AssignInput{
		GameweekID: open.ID,
		PlayerID:   "p-jim-jones",
		Team:       roster.TeamSubs,
		Position:   &target,
	})
	var taken *SlotTakenError
	if !errors.As(err, &taken) {
		t.Fatalf("expected SlotTakenError, got %v", err)
	}
	if taken.OccupantID != "p-dave-smith" {
		t.Fatalf("unexpected occupant: %+v", taken)
	}
}

// failingGameweekRepo asserts validation happens before any store read.
type failingGameweekRepo struct{}

func (failingGameweekRepo) GetByID(context.Context, string) (gameweek.Gameweek, bool, error) {
	return gameweek.Gameweek{}, false, errors.New("store must not be called")
}

func (failingGameweekRepo) GetOpen(context.Context) (gameweek.Gameweek, bool, error) {
	return gameweek.Gameweek{}, false, errors.New("store must not be called")
}

func (failingGameweekRepo) LatestLocked(context.Context) (gameweek.Gameweek, bool, error) {
	return gameweek.Gameweek{}, false, errors.New("store must not be called")
}

func (failingGameweekRepo) ListLocked(context.Context) ([]gameweek.Gameweek, error) {
	return nil, errors.New("store must not be called")
}

func (failingGameweekRepo) Create(context.Context, gameweek.Gameweek) (gameweek.Gameweek, error) {
	return gameweek.Gameweek{}, errors.New("store must not be called")
}

func (failingGameweekRepo) Lock(context.Context, string, int, int, time.Time) error {
	return errors.New("store must not be called")
}
