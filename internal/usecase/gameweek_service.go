package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/platform/logging"
)

type CreateGameweekInput struct {
	GameDate time.Time
	GameTime string
	Location string
}

type LockGameweekInput struct {
	GameweekID  string
	DarksScore  int
	WhitesScore int
}

// GameOverview is the landing page read: the gameweek in play (the open one,
// falling back to the most recently locked), its sign-up sheet, and the
// player pool.
type GameOverview struct {
	Gameweek *gameweek.Gameweek
	Entries  []roster.Entry
	Players  []player.Player
}

// TeamsOverview is the current gameweek's roster grouped by team.
type TeamsOverview struct {
	Gameweek *gameweek.Gameweek
	Darks    []roster.Entry
	Whites   []roster.Entry
	Subs     []roster.Entry
}

// ResultsPage is a cursor page over locked gameweeks, newest first.
type ResultsPage struct {
	Items       []gameweek.Gameweek
	OlderCursor string
	NewerCursor string
}

type leagueTableInvalidator interface {
	Invalidate(ctx context.Context)
}

// GameweekService owns the gameweek lifecycle and the read-side overviews.
type GameweekService struct {
	gameweekRepo gameweek.Repository
	rosterRepo   roster.Repository
	playerRepo   player.Repository
	tableCache   leagueTableInvalidator
	logger       *logging.Logger
	now          func() time.Time
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	tableCache leagueTableInvalidator,
	logger *logging.Logger,
) *GameweekService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GameweekService{
		gameweekRepo: gameweekRepo,
		rosterRepo:   rosterRepo,
		playerRepo:   playerRepo,
		tableCache:   tableCache,
		logger:       logger,
		now:          time.Now,
	}
}

// Create opens a new gameweek. Only one gameweek may be open at a time; the
// store enforces this too, so the pre-check only exists to return a clear
// message in the common case.
func (s *GameweekService) Create(ctx context.Context, input CreateGameweekInput) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Create")
	defer span.End()

	gw := gameweek.Gameweek{
		GameDate: input.GameDate,
		GameTime: strings.TrimSpace(input.GameTime),
		Location: strings.TrimSpace(input.Location),
		Status:   gameweek.StatusOpen,
	}
	if err := gw.Validate(); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.gameweekRepo.GetOpen(ctx); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("check open gameweek: %w", err)
	} else if exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: an open gameweek already exists", ErrConflict)
	}

	created, err := s.gameweekRepo.Create(ctx, gw)
	if err != nil {
		if errors.Is(err, gameweek.ErrOpenGameweekExists) {
			return gameweek.Gameweek{}, fmt.Errorf("%w: an open gameweek already exists", ErrConflict)
		}
		return gameweek.Gameweek{}, fmt.Errorf("create gameweek: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek created",
		"gameweek_id", created.ID,
		"game_date", created.GameDate.Format(time.DateOnly),
	)
	return created, nil
}

// Lock records the final score and closes the gameweek to sign-up changes.
// Locking feeds the league table, so the cached table is invalidated.
func (s *GameweekService) Lock(ctx context.Context, input LockGameweekInput) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Lock")
	defer span.End()

	gameweekID := strings.TrimSpace(input.GameweekID)
	if gameweekID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if input.DarksScore < 0 || input.WhitesScore < 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	if !gw.IsOpen() {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek %s is already locked", ErrConflict, gameweekID)
	}

	lockedAt := s.now().UTC()
	if err := s.gameweekRepo.Lock(ctx, gameweekID, input.DarksScore, input.WhitesScore, lockedAt); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("lock gameweek: %w", err)
	}

	if s.tableCache != nil {
		s.tableCache.Invalidate(ctx)
	}

	locked, _, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("reload locked gameweek: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek locked",
		"gameweek_id", gameweekID,
		"darks_score", input.DarksScore,
		"whites_score", input.WhitesScore,
	)
	return locked, nil
}

// Current resolves the gameweek the site centres on: the open one when it
// exists, otherwise the most recently locked one. exists is false for a
// fresh install with no gameweeks at all.
func (s *GameweekService) Current(ctx context.Context) (gameweek.Gameweek, bool, error) {
	gw, exists, err := s.gameweekRepo.GetOpen(ctx)
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("get open gameweek: %w", err)
	}
	if exists {
		return gw, true, nil
	}

	gw, exists, err = s.gameweekRepo.LatestLocked(ctx)
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("get latest locked gameweek: %w", err)
	}
	return gw, exists, nil
}

// Overview loads the landing page reads in parallel.
func (s *GameweekService) Overview(ctx context.Context) (GameOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Overview")
	defer span.End()

	var (
		current       gameweek.Gameweek
		currentExists bool
		players       []player.Player
		currentErr    error
		playersErr    error
	)

	pool, err := ants.NewPool(2)
	if err != nil {
		return GameOverview{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	tasks := []func(){
		func() { current, currentExists, currentErr = s.Current(ctx) },
		func() { players, playersErr = s.playerRepo.List(ctx) },
	}
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			return GameOverview{}, fmt.Errorf("submit overview read: %w", err)
		}
	}
	workers.Wait()

	if currentErr != nil {
		return GameOverview{}, currentErr
	}
	if playersErr != nil {
		return GameOverview{}, fmt.Errorf("list players: %w", playersErr)
	}

	overview := GameOverview{Players: players}
	if !currentExists {
		return overview, nil
	}

	gw := current
	overview.Gameweek = &gw
	entries, err := s.rosterRepo.ListByGameweek(ctx, current.ID)
	if err != nil {
		return GameOverview{}, fmt.Errorf("list roster: %w", err)
	}
	overview.Entries = entries
	return overview, nil
}

// Teams groups the current gameweek's roster by team.
func (s *GameweekService) Teams(ctx context.Context) (TeamsOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Teams")
	defer span.End()

	current, exists, err := s.Current(ctx)
	if err != nil {
		return TeamsOverview{}, err
	}
	if !exists {
		return TeamsOverview{}, nil
	}

	entries, err := s.rosterRepo.ListByGameweek(ctx, current.ID)
	if err != nil {
		return TeamsOverview{}, fmt.Errorf("list roster: %w", err)
	}

	gw := current
	overview := TeamsOverview{Gameweek: &gw}
	for _, e := range entries {
		switch e.Team {
		case roster.TeamDarks:
			overview.Darks = append(overview.Darks, e)
		case roster.TeamWhites:
			overview.Whites = append(overview.Whites, e)
		default:
			overview.Subs = append(overview.Subs, e)
		}
	}
	return overview, nil
}

// Results pages through locked gameweeks, newest first. An older cursor
// continues past the named gameweek; a newer cursor pages back towards the
// present. Only gameweeks with a recorded score appear.
func (s *GameweekService) Results(ctx context.Context, olderThan, newerThan string, limit int) (ResultsPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Results")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	olderThan = strings.TrimSpace(olderThan)
	newerThan = strings.TrimSpace(newerThan)
	if olderThan != "" && newerThan != "" {
		return ResultsPage{}, fmt.Errorf("%w: older and newer cursors are mutually exclusive", ErrInvalidInput)
	}

	locked, err := s.gameweekRepo.ListLocked(ctx)
	if err != nil {
		return ResultsPage{}, fmt.Errorf("list locked gameweeks: %w", err)
	}

	withResults := locked[:0:0]
	for _, gw := range locked {
		if gw.HasResult() {
			withResults = append(withResults, gw)
		}
	}

	start := 0
	switch {
	case olderThan != "":
		idx := indexOfGameweek(withResults, olderThan)
		if idx < 0 {
			return ResultsPage{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, olderThan)
		}
		start = idx + 1
	case newerThan != "":
		idx := indexOfGameweek(withResults, newerThan)
		if idx < 0 {
			return ResultsPage{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, newerThan)
		}
		start = idx - limit
		if start < 0 {
			start = 0
		}
	}

	end := start + limit
	if end > len(withResults) {
		end = len(withResults)
	}
	if start > len(withResults) {
		start = len(withResults)
	}

	page := ResultsPage{Items: append([]gameweek.Gameweek(nil), withResults[start:end]...)}
	if end < len(withResults) {
		page.OlderCursor = withResults[end-1].ID
	}
	if start > 0 {
		page.NewerCursor = withResults[start].ID
	}
	return page, nil
}

func indexOfGameweek(items []gameweek.Gameweek, id string) int {
	for i, gw := range items {
		if gw.ID == id {
			return i
		}
	}
	return -1
}
