package postgres

import (
	"time"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
)

type gameweekTableModel struct {
	ID          string     `db:"id"`
	GameDate    time.Time  `db:"game_date"`
	GameTime    string     `db:"game_time"`
	Location    string     `db:"location"`
	Status      string     `db:"status"`
	DarksScore  *int       `db:"darks_score"`
	WhitesScore *int       `db:"whites_score"`
	LockedAt    *time.Time `db:"locked_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

type gameweekInsertModel struct {
	GameDate time.Time `db:"game_date"`
	GameTime string    `db:"game_time"`
	Location string    `db:"location"`
	Status   string    `db:"status"`
}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:          row.ID,
		GameDate:    row.GameDate,
		GameTime:    row.GameTime,
		Location:    row.Location,
		Status:      gameweek.Status(row.Status),
		DarksScore:  row.DarksScore,
		WhitesScore: row.WhitesScore,
		LockedAt:    row.LockedAt,
		CreatedAt:   row.CreatedAt,
	}
}
