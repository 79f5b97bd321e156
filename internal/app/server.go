// internal/app/server.go
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gridiron-service/internal/config"
	"gridiron-service/internal/db"
	"gridiron-service/internal/feed"
	authhandler "gridiron-service/internal/handlers/auth"
	feedhandler "gridiron-service/internal/handlers/feed"
	leaguehandler "gridiron-service/internal/handlers/league"
	playerhandler "gridiron-service/internal/handlers/player"
	seasonhandler "gridiron-service/internal/handlers/season"
	teamhandler "gridiron-service/internal/handlers/team"
	"gridiron-service/internal/repository/postgres"
	authsvc "gridiron-service/internal/service/auth"
	"gridiron-service/internal/service/email"
	leaguesvc "gridiron-service/internal/service/league"
	playersvc "gridiron-service/internal/service/player"
	seasonsvc "gridiron-service/internal/service/season"
	teamsvc "gridiron-service/internal/service/team"
)

type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	rdb    *redis.Client
	hub    *feed.Hub
	bridge *feed.Bridge
	http   *http.Server

	closePool func()
}

// NewServer connects the backing stores and wires every layer together.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		pool.Close()
		return nil, err
	}

	executor := postgres.NewExecutor(pool, logger)

	authRepo := postgres.NewAuthRepository(executor)
	leagueRepo := postgres.NewLeagueRepository(executor)
	teamRepo := postgres.NewTeamRepository(executor)
	playerRepo := postgres.NewPlayerRepository(executor)
	seasonRepo := postgres.NewSeasonRepository(executor)

	hub := feed.NewHub(logger)
	bridge := feed.NewBridge(rdb, hub, logger)

	mailer := email.NewSender(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.SMTPFromName, cfg.SMTPSecure, logger,
	)

	authService := authsvc.NewService(authRepo, mailer, hub, logger,
		cfg.SessionWindow, cfg.ResetTokenTTL, cfg.BaseURL)
	leagueService := leaguesvc.NewService(leagueRepo, bridge, logger)
	teamService := teamsvc.NewService(teamRepo, bridge, logger)
	playerService := playersvc.NewService(playerRepo)
	seasonService := seasonsvc.NewService(seasonRepo)

	router := SetupRouter(routerDeps{
		cfg:         cfg,
		logger:      logger,
		authService: authService,
		auth:        authhandler.NewHandler(authService, logger),
		league:      leaguehandler.NewHandler(leagueService, logger),
		team:        teamhandler.NewHandler(teamService, logger),
		player:      playerhandler.NewHandler(playerService, logger),
		season:      seasonhandler.NewHandler(seasonService, logger),
		feed:        feedhandler.NewHandler(hub, logger),
	})

	return &Server{
		cfg:    cfg,
		logger: logger,
		rdb:    rdb,
		hub:    hub,
		bridge: bridge,
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		closePool: pool.Close,
	}, nil
}

// Run starts the feed hub, the Redis bridge and the HTTP listener, then
// blocks until the context is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)
	go s.bridge.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.shutdown()
	case err := <-errCh:
		return err
	}
}

func (s *Server) shutdown() error {
	s.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if closeErr := s.rdb.Close(); err == nil {
		err = closeErr
	}
	s.closePool()
	return err
}
