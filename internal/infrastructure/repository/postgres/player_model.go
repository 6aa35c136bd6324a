package postgres

import "time"

type playerTableModel struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

type playerInsertModel struct {
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}
