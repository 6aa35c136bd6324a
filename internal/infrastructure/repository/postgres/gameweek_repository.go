package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	qb "github.com/kickaround/pickup-league/internal/platform/querybuilder"
)

// singleOpenGameweekIndex is the partial unique index that allows at most
// one open gameweek. Its violation maps to ErrOpenGameweekExists.
const singleOpenGameweekIndex = "gameweeks_single_open_idx"

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.Eq("id", gameweekID)).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get gameweek by id query: %w", err)
	}
	return r.getOne(ctx, query, args, "get gameweek by id")
}

func (r *GameweekRepository) GetOpen(ctx context.Context) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.Eq("status", string(gameweek.StatusOpen))).
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get open gameweek query: %w", err)
	}
	return r.getOne(ctx, query, args, "get open gameweek")
}

func (r *GameweekRepository) LatestLocked(ctx context.Context) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.Eq("status", string(gameweek.StatusLocked))).
		OrderBy("game_date DESC", "created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build latest locked gameweek query: %w", err)
	}
	return r.getOne(ctx, query, args, "get latest locked gameweek")
}

func (r *GameweekRepository) ListLocked(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.Eq("status", string(gameweek.StatusLocked))).
		OrderBy("game_date DESC", "created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list locked gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select locked gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *GameweekRepository) Create(ctx context.Context, gw gameweek.Gameweek) (gameweek.Gameweek, error) {
	query, args, err := qb.InsertModel("gameweeks", gameweekInsertModel{
		GameDate: gw.GameDate,
		GameTime: gw.GameTime,
		Location: gw.Location,
		Status:   string(gw.Status),
	}, "RETURNING *")
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("build insert gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if violatedConstraint(err) == singleOpenGameweekIndex {
			return gameweek.Gameweek{}, gameweek.ErrOpenGameweekExists
		}
		return gameweek.Gameweek{}, fmt.Errorf("insert gameweek: %w", err)
	}
	return gameweekFromRow(row), nil
}

func (r *GameweekRepository) Lock(ctx context.Context, gameweekID string, darksScore, whitesScore int, lockedAt time.Time) error {
	query, args, err := qb.Update("gameweeks").
		Set("status", string(gameweek.StatusLocked)).
		Set("darks_score", darksScore).
		Set("whites_score", whitesScore).
		Set("locked_at", lockedAt).
		Where(
			qb.Eq("id", gameweekID),
			qb.Eq("status", string(gameweek.StatusOpen)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock gameweek query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("lock gameweek: %w", err)
	}
	return nil
}

func (r *GameweekRepository) getOne(ctx context.Context, query string, args []any, op string) (gameweek.Gameweek, bool, error) {
	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return gameweekFromRow(row), true, nil
}
