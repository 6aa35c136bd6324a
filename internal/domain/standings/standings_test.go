package standings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
)

func lockedGameweek(id string, darks, whites int) gameweek.Gameweek {
	lockedAt := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	return gameweek.Gameweek{
		ID:          id,
		GameDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:      gameweek.StatusLocked,
		DarksScore:  &darks,
		WhitesScore: &whites,
		LockedAt:    &lockedAt,
	}
}

func testPlayers() []player.Player {
	return []player.Player{
		{ID: "p-a", FirstName: "Alan", LastName: "Archer"},
		{ID: "p-b", FirstName: "Ben", LastName: "Booth"},
		{ID: "p-c", FirstName: "Carl", LastName: "Crane"},
	}
}

func rowByID(t *testing.T, rows []Row, playerID string) Row {
	t.Helper()
	for _, row := range rows {
		if row.PlayerID == playerID {
			return row
		}
	}
	t.Fatalf("no row for player %s", playerID)
	return Row{}
}

func TestCompute_WinLossAndSubsExcluded(t *testing.T) {
	rows := Compute(
		testPlayers(),
		[]gameweek.Gameweek{lockedGameweek("gw-1", 3, 1)},
		[]roster.Entry{
			{GameweekID: "gw-1", PlayerID: "p-a", Team: roster.TeamDarks, Position: 1},
			{GameweekID: "gw-1", PlayerID: "p-b", Team: roster.TeamWhites, Position: 8},
			{GameweekID: "gw-1", PlayerID: "p-c", Team: roster.TeamSubs, Position: 15},
		},
	)
	require.Len(t, rows, 3)

	a := rowByID(t, rows, "p-a")
	assert.Equal(t, 1, a.Played)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 0, a.Draws)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, float64(100), a.WinPct)

	b := rowByID(t, rows, "p-b")
	assert.Equal(t, 1, b.Played)
	assert.Equal(t, 0, b.Wins)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, float64(0), b.WinPct)

	c := rowByID(t, rows, "p-c")
	assert.Equal(t, 0, c.Played, "subs never accrue a game played")
	assert.Equal(t, float64(0), c.WinPct)
}

func TestCompute_Draw(t *testing.T) {
	rows := Compute(
		testPlayers(),
		[]gameweek.Gameweek{lockedGameweek("gw-1", 2, 2)},
		[]roster.Entry{
			{GameweekID: "gw-1", PlayerID: "p-a", Team: roster.TeamDarks, Position: 1},
			{GameweekID: "gw-1", PlayerID: "p-b", Team: roster.TeamWhites, Position: 8},
		},
	)

	for _, id := range []string{"p-a", "p-b"} {
		row := rowByID(t, rows, id)
		assert.Equal(t, 1, row.Draws)
		assert.Equal(t, 0, row.Wins)
		assert.Equal(t, 0, row.Losses)
	}
}

func TestCompute_NoGamesHasZeroWinPct(t *testing.T) {
	rows := Compute(testPlayers(), nil, nil)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 0, row.Played)
		assert.Equal(t, float64(0), row.WinPct)
	}
}

func TestCompute_SkipsGameweekWithoutScores(t *testing.T) {
	gw := gameweek.Gameweek{ID: "gw-1", Status: gameweek.StatusLocked}
	rows := Compute(
		testPlayers(),
		[]gameweek.Gameweek{gw},
		[]roster.Entry{{GameweekID: "gw-1", PlayerID: "p-a", Team: roster.TeamDarks, Position: 1}},
	)

	a := rowByID(t, rows, "p-a")
	assert.Equal(t, 0, a.Played)
}

func TestCompute_AccumulatesAcrossGameweeks(t *testing.T) {
	rows := Compute(
		testPlayers(),
		[]gameweek.Gameweek{
			lockedGameweek("gw-1", 3, 1),
			lockedGameweek("gw-2", 0, 2),
			lockedGameweek("gw-3", 1, 1),
		},
		[]roster.Entry{
			{GameweekID: "gw-1", PlayerID: "p-a", Team: roster.TeamDarks, Position: 1},
			{GameweekID: "gw-2", PlayerID: "p-a", Team: roster.TeamDarks, Position: 1},
			{GameweekID: "gw-3", PlayerID: "p-a", Team: roster.TeamWhites, Position: 8},
		},
	)

	a := rowByID(t, rows, "p-a")
	assert.Equal(t, 3, a.Played)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 1, a.Losses)
	assert.InDelta(t, 33.333, a.WinPct, 0.001)
}

func TestSortForDisplay(t *testing.T) {
	rows := []Row{
		{PlayerID: "p-1", Name: "Zed", Played: 4, Wins: 2, WinPct: 50},
		{PlayerID: "p-2", Name: "Amy", Played: 2, Wins: 2, WinPct: 100},
		{PlayerID: "p-3", Name: "Bob", Played: 2, Wins: 2, WinPct: 100},
		{PlayerID: "p-4", Name: "Cal", Played: 0, Wins: 0, WinPct: 0},
	}

	SortForDisplay(rows)

	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.Name)
	}
	assert.Equal(t, []string{"Amy", "Bob", "Zed", "Cal"}, got)
}
