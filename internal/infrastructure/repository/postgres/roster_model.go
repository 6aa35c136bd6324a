package postgres

import (
	"github.com/kickaround/pickup-league/internal/domain/roster"
)

// gameweekPlayerTableModel carries the joined player name alongside the
// entry columns.
type gameweekPlayerTableModel struct {
	ID              string `db:"id"`
	GameweekID      string `db:"gameweek_id"`
	PlayerID        string `db:"player_id"`
	Team            string `db:"team"`
	Position        int    `db:"position"`
	RemoveRequested bool   `db:"remove_requested"`
	FirstName       string `db:"first_name"`
	LastName        string `db:"last_name"`
}

type gameweekPlayerInsertModel struct {
	GameweekID string `db:"gameweek_id"`
	PlayerID   string `db:"player_id"`
	Team       string `db:"team"`
	Position   int    `db:"position"`
}

func entryFromRow(row gameweekPlayerTableModel) roster.Entry {
	return roster.Entry{
		ID:              row.ID,
		GameweekID:      row.GameweekID,
		PlayerID:        row.PlayerID,
		PlayerFirstName: row.FirstName,
		PlayerLastName:  row.LastName,
		Team:            roster.Team(row.Team),
		Position:        row.Position,
		RemoveRequested: row.RemoveRequested,
	}
}
