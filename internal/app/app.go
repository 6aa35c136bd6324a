package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/kickaround/pickup-league/internal/config"
	"github.com/kickaround/pickup-league/internal/domain/gameweek"
	"github.com/kickaround/pickup-league/internal/domain/player"
	"github.com/kickaround/pickup-league/internal/domain/roster"
	"github.com/kickaround/pickup-league/internal/infrastructure/auth/organiser"
	"github.com/kickaround/pickup-league/internal/infrastructure/repository/memory"
	"github.com/kickaround/pickup-league/internal/infrastructure/repository/postgres"
	"github.com/kickaround/pickup-league/internal/interfaces/httpapi"
	"github.com/kickaround/pickup-league/internal/platform/cache"
	"github.com/kickaround/pickup-league/internal/platform/logging"
	"github.com/kickaround/pickup-league/internal/platform/resilience"
	"github.com/kickaround/pickup-league/internal/usecase"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	playerRepo, gameweekRepo, rosterRepo, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var tableCache *cache.Store
	if cfg.CacheEnabled {
		tableCache = cache.NewStore(cfg.CacheTTL)
	}

	tableSvc := usecase.NewTableService(playerRepo, gameweekRepo, rosterRepo, tableCache, logger)
	gameweekSvc := usecase.NewGameweekService(gameweekRepo, rosterRepo, playerRepo, tableSvc, logger)
	rosterSvc := usecase.NewRosterService(rosterRepo, gameweekRepo, playerRepo, logger)
	playerSvc := usecase.NewPlayerService(playerRepo, tableSvc, logger)

	verifier := buildVerifier(cfg, logger)

	handler := httpapi.NewHandler(gameweekSvc, rosterSvc, playerSvc, tableSvc, verifier, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db}, nil
}

// Close releases resources that outlive the HTTP server.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (player.Repository, gameweek.Repository, roster.Repository, *sqlx.DB, error) {
	if cfg.UseMemoryStore() {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")

		var seed []player.Player
		if cfg.SeedDemoPlayers {
			seed = memory.SeedPlayers()
		}
		playerRepo := memory.NewPlayerRepository(seed)
		gameweekRepo := memory.NewGameweekRepository(nil)
		rosterRepo := memory.NewRosterRepository(playerRepo)
		return playerRepo, gameweekRepo, rosterRepo, nil, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.SeedDemoPlayers {
		if err := postgres.SeedDemoPlayers(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, nil, fmt.Errorf("seed demo players: %w", err)
		}
	}

	logger.Info("using postgres repositories", "db", dbNameFromURL(cfg.DBURL))

	return postgres.NewPlayerRepository(db), postgres.NewGameweekRepository(db), postgres.NewRosterRepository(db), db, nil
}

func buildVerifier(cfg config.Config, logger *logging.Logger) usecase.OrganiserVerifier {
	if !cfg.PinServiceEnabled {
		return organiser.NewStaticVerifier(cfg.OrganiserPin)
	}

	return organiser.NewClient(organiser.ClientConfig{
		BaseURL:    cfg.PinServiceBaseURL,
		VerifyPath: cfg.PinServiceVerifyPath,
		Timeout:    cfg.PinServiceTimeout,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PinServiceCircuitEnabled,
			FailureThreshold: cfg.PinServiceCircuitFailures,
			OpenTimeout:      cfg.PinServiceCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PinServiceCircuitHalfOpenMax,
		},
	})
}
