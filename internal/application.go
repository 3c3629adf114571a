package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/service"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/rest"
	"golang.org/x/exp/rand"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.SessionTTL)
	seed := opponentSeed(conf.Opponent.Seed)
	log.Info("Opponent ready", "seed", seed, "sessionTTL", conf.SessionTTL.String())

	botService := service.NewBotService(rand.NewSource(seed))
	gameManager := usecase.NewGameManager(logger, gameRepo, botService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// opponentSeed picks a clock seed when none is configured; the chosen one is logged so a game can be replayed.
func opponentSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano()) //nolint: gosec // clock is never negative here
	}
	return seed
}
