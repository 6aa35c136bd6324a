package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/infrastructure/repository/memory"
	"github.com/kickaround/pickup-league/internal/platform/cache"
)

func TestTableService_TableRefreshesAfterLock(t *testing.T) {
	t.Parallel()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository(playerRepo)
	gameweekRepo := memory.NewGameweekRepository(nil)

	tableService := NewTableService(playerRepo, gameweekRepo, rosterRepo, cache.NewStore(time.Minute), nil)
	gameweekService := NewGameweekService(gameweekRepo, rosterRepo, playerRepo, tableService, nil)
	rosterService := NewRosterService(rosterRepo, gameweekRepo, playerRepo, nil)

	ctx := context.Background()

	rows, err := tableService.Table(ctx)
	require.NoError(t, err)
	require.Len(t, rows, len(memory.SeedPlayers()))
	for _, row := range rows {
		require.Zero(t, row.Played, "player %s should have no games yet", row.PlayerID)
	}

	created, err := gameweekService.Create(ctx, CreateGameweekInput{
		GameDate: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, _, err = rosterService.ClaimSlot(ctx, created.ID, "p-dave-smith", 1)
	require.NoError(t, err)
	_, _, err = rosterService.ClaimSlot(ctx, created.ID, "p-jim-jones", 2)
	require.NoError(t, err)
	_, err = rosterService.Assign(ctx, AssignInput{GameweekID: created.ID, PlayerID: "p-dave-smith", Team: roster.TeamDarks})
	require.NoError(t, err)
	_, err = rosterService.Assign(ctx, AssignInput{GameweekID: created.ID, PlayerID: "p-jim-jones", Team: roster.TeamWhites})
	require.NoError(t, err)

	// Table still served from cache; the lock below must invalidate it.
	_, err = gameweekService.Lock(ctx, LockGameweekInput{GameweekID: created.ID, DarksScore: 3, WhitesScore: 1})
	require.NoError(t, err)

	rows, err = tableService.Table(ctx)
	require.NoError(t, err)

	byID := make(map[string]int, len(rows))
	for i, row := range rows {
		byID[row.PlayerID] = i
	}

	dave := rows[byID["p-dave-smith"]]
	require.Equal(t, 1, dave.Played)
	require.Equal(t, 1, dave.Wins)
	require.InDelta(t, 100.0, dave.WinPct, 0.001)

	jim := rows[byID["p-jim-jones"]]
	require.Equal(t, 1, jim.Played)
	require.Equal(t, 1, jim.Losses)
	require.Zero(t, jim.Wins)

	// Winner sorts first.
	require.Equal(t, "p-dave-smith", rows[0].PlayerID)
}

func TestTableService_SubsExcludedFromTable(t *testing.T) {
	t.Parallel()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository(playerRepo)
	gameweekRepo := memory.NewGameweekRepository(nil)

	tableService := NewTableService(playerRepo, gameweekRepo, rosterRepo, nil, nil)
	gameweekService := NewGameweekService(gameweekRepo, rosterRepo, playerRepo, tableService, nil)
	rosterService := NewRosterService(rosterRepo, gameweekRepo, playerRepo, nil)

	ctx := context.Background()

	created, err := gameweekService.Create(ctx, CreateGameweekInput{
		GameDate: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Stays on subs: played but never assigned to a side.
	_, _, err = rosterService.ClaimSlot(ctx, created.ID, "p-andy-taylor", 15)
	require.NoError(t, err)

	_, err = gameweekService.Lock(ctx, LockGameweekInput{GameweekID: created.ID, DarksScore: 2, WhitesScore: 0})
	require.NoError(t, err)

	rows, err := tableService.Table(ctx)
	require.NoError(t, err)

	for _, row := range rows {
		if row.PlayerID == "p-andy-taylor" {
			require.Zero(t, row.Played, "sub appearance must not count as a game")
			return
		}
	}
	t.Fatal("expected p-andy-taylor in the table")
}
