package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/service"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/rest"
)

var (
	ErrAddrNotFound  = errors.New("redis address string is empty")
	ErrPathNotFound  = errors.New("sqlite storage path is empty")
	ErrInvalidConfig = errors.New("invalid config")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrAddrNotFound)
	}

	if conf.SQLite.StoragePath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrPathNotFound)
	}

	redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
		Addr:     conf.Redis.GetRedisAddr(),
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLite.StoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage, repository.LockOptions{
		TTL:      conf.Lock.TTL,
		Attempts: conf.Lock.Attempts,
		Delay:    conf.Lock.Delay,
	})
	userRepo := repository.NewUserRepository(sqliteStorage.Connection)
	scoreRepo := repository.NewScoreRepository(sqliteStorage.Connection)

	engine := tictactoe.NewEngine(tictactoe.NewRandomOpponent(nil))

	userService := service.NewUserService(userRepo)
	gameService := service.NewGameService(gameRepo)
	scoreService := service.NewScoreService(scoreRepo)
	gamePlayService := service.NewGamePlayService(logger.With("component", "gameplay"), engine, gameService, scoreService)

	gameUseCase := usecase.NewGameUseCase(logger.With("component", "usecase"), userService, gameService, gamePlayService)
	userUseCase := usecase.NewUserUseCase(logger.With("component", "usecase"), userService, scoreService)

	server := rest.NewServer(logger, conf.HTTPPort, gameUseCase, userUseCase)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := server.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Received signal, shutting down", "timeout", conf.ShutdownTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("HTTP server stopped")

	return nil
}
