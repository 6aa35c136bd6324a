package usecase

import (
	"context"
	"fmt"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/domain/standings"
	"github.com/kickaround/pickup-league/internal/platform/cache"
	"github.com/kickaround/pickup-league/internal/platform/logging"
)

const leagueTableCacheKey = "league:table"

// TableService computes the all-time league table from locked gameweeks.
// The table only changes when a gameweek locks or the player pool changes,
// so it is cached and invalidated on those writes.
type TableService struct {
	playerRepo   player.Repository
	gameweekRepo gameweek.Repository
	rosterRepo   roster.Repository
	cache        *cache.Store
	logger       *logging.Logger
}

func NewTableService(
	playerRepo player.Repository,
	gameweekRepo gameweek.Repository,
	rosterRepo roster.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *TableService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TableService{
		playerRepo:   playerRepo,
		gameweekRepo: gameweekRepo,
		rosterRepo:   rosterRepo,
		cache:        cacheStore,
		logger:       logger,
	}
}

// Table returns the league table sorted for display.
func (s *TableService) Table(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableService.Table")
	defer span.End()

	if s.cache == nil {
		return s.compute(ctx)
	}

	v, err := s.cache.GetOrLoad(ctx, leagueTableCacheKey, func(ctx context.Context) (any, error) {
		rows, err := s.compute(ctx)
		if err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	rows, _ := v.([]standings.Row)
	return append([]standings.Row(nil), rows...), nil
}

// Invalidate drops the cached table.
func (s *TableService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, leagueTableCacheKey)
}

func (s *TableService) compute(ctx context.Context) ([]standings.Row, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	locked, err := s.gameweekRepo.ListLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locked gameweeks: %w", err)
	}

	gameweekIDs := make([]string, 0, len(locked))
	for _, gw := range locked {
		gameweekIDs = append(gameweekIDs, gw.ID)
	}

	entries, err := s.rosterRepo.ListByGameweeks(ctx, gameweekIDs)
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}

	rows := standings.Compute(players, locked, entries)
	standings.SortForDisplay(rows)
	return rows, nil
}
