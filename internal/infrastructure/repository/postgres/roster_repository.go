package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kickaround/pickup-league/internal/domain/roster"
	qb "github.com/kickaround/pickup-league/internal/platform/querybuilder"
)

const rosterJoin = "gameweek_players gp JOIN players p ON p.id = gp.player_id"

var rosterColumns = []string{
	"gp.id", "gp.gameweek_id", "gp.player_id", "gp.team", "gp.position",
	"gp.remove_requested", "p.first_name", "p.last_name",
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Insert(ctx context.Context, entry roster.Entry) (roster.Entry, error) {
	query, args, err := qb.InsertModel("gameweek_players", gameweekPlayerInsertModel{
		GameweekID: entry.GameweekID,
		PlayerID:   entry.PlayerID,
		Team:       string(entry.Team),
		Position:   entry.Position,
	}, "RETURNING id")
	if err != nil {
		return roster.Entry{}, fmt.Errorf("build insert roster entry query: %w", err)
	}

	var id string
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return roster.Entry{}, roster.ErrDuplicateEntry
		}
		return roster.Entry{}, fmt.Errorf("insert roster entry: %w", err)
	}

	created, exists, err := r.GetByGameweekAndPlayer(ctx, entry.GameweekID, entry.PlayerID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("reload roster entry: %w", err)
	}
	if !exists {
		created = entry
		created.ID = id
	}
	return created, nil
}

func (r *RosterRepository) GetByGameweekAndPlayer(ctx context.Context, gameweekID, playerID string) (roster.Entry, bool, error) {
	query, args, err := qb.Select(rosterColumns...).From(rosterJoin).
		Where(
			qb.Eq("gp.gameweek_id", gameweekID),
			qb.Eq("gp.player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build get roster entry by player query: %w", err)
	}
	return r.getOne(ctx, query, args, "get roster entry by player")
}

func (r *RosterRepository) GetByGameweekAndPosition(ctx context.Context, gameweekID string, position int) (roster.Entry, bool, error) {
	query, args, err := qb.Select(rosterColumns...).From(rosterJoin).
		Where(
			qb.Eq("gp.gameweek_id", gameweekID),
			qb.Eq("gp.position", position),
		).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build get roster entry by position query: %w", err)
	}
	return r.getOne(ctx, query, args, "get roster entry by position")
}

func (r *RosterRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]roster.Entry, error) {
	query, args, err := qb.Select(rosterColumns...).From(rosterJoin).
		Where(qb.Eq("gp.gameweek_id", gameweekID)).
		OrderBy("gp.position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}
	return r.selectMany(ctx, query, args, "select roster entries")
}

func (r *RosterRepository) ListByGameweeks(ctx context.Context, gameweekIDs []string) ([]roster.Entry, error) {
	if len(gameweekIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(gameweekIDs))
	for _, id := range gameweekIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select(rosterColumns...).From(rosterJoin).
		Where(qb.In("gp.gameweek_id", ids)).
		OrderBy("gp.gameweek_id", "gp.position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster by gameweeks query: %w", err)
	}
	return r.selectMany(ctx, query, args, "select roster entries by gameweeks")
}

func (r *RosterRepository) UpdateAssignment(ctx context.Context, gameweekID, playerID string, team roster.Team, position *int) (bool, error) {
	builder := qb.Update("gameweek_players").
		Set("team", string(team))
	if position != nil {
		builder.Set("position", *position)
	}
	query, args, err := builder.
		Where(
			qb.Eq("gameweek_id", gameweekID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update assignment query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, roster.ErrDuplicateEntry
		}
		return false, fmt.Errorf("update assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update assignment rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *RosterRepository) MarkRemoveRequested(ctx context.Context, gameweekID, playerID string) error {
	query, args, err := qb.Update("gameweek_players").
		Set("remove_requested", true).
		Where(
			qb.Eq("gameweek_id", gameweekID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark remove requested query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark remove requested: %w", err)
	}
	return nil
}

func (r *RosterRepository) Delete(ctx context.Context, gameweekID, playerID string) error {
	query, args, err := qb.DeleteFrom("gameweek_players").
		Where(
			qb.Eq("gameweek_id", gameweekID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete roster entry: %w", err)
	}
	return nil
}

func (r *RosterRepository) getOne(ctx context.Context, query string, args []any, op string) (roster.Entry, bool, error) {
	var row gameweekPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, false, nil
		}
		return roster.Entry{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return entryFromRow(row), true, nil
}

func (r *RosterRepository) selectMany(ctx context.Context, query string, args []any, op string) ([]roster.Entry, error) {
	var rows []gameweekPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}
	return out, nil
}
