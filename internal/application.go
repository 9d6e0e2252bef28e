package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/service"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	statsBuffer     = 1024
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statsRepo, closeStats, err := newStatsRepository(ctx, conf.Redis)
	if err != nil {
		return err
	}

	defer closeStats(log)

	generateCode, err := pkg.NewRoomCodeGenerator(conf.Rooms.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to create room code generator: %w", err)
	}

	clock := clockwork.NewRealClock()

	statsRecorder := service.NewStatsRecorder(logger, statsRepo, statsBuffer)
	hub := websocket.NewHub(logger)
	coordinator := usecase.NewCoordinator(logger, repository.NewRoomRegistry(), hub, statsRecorder, clock, generateCode)
	sweeper := usecase.NewSweeper(logger, clock, coordinator, conf.Rooms.SweepInterval, conf.Rooms.EmptyRetention)

	wsServer := websocket.New(logger, conf.WebSocket, hub, coordinator)
	handlers := rest.NewHandlers(logger, clock, coordinator, statsRecorder, hub)
	httpServer := rest.NewServer(conf, handlers, wsServer)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		return sweeper.Run(groupCtx)
	})

	group.Go(func() error {
		return statsRecorder.Run(groupCtx)
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application stopped")

	return nil
}

// newStatsRepository returns the Redis backed repository when enabled, the in-memory one otherwise.
func newStatsRepository(ctx context.Context, conf config.Redis) (repository.StatsRepository, func(*slog.Logger), error) {
	if !conf.Enabled {
		return repository.NewMemoryStatsRepository(), func(*slog.Logger) {}, nil
	}

	if conf.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func(log *slog.Logger) {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewStatsRepository(redisStorage.Connection), closeStorage, nil
}
