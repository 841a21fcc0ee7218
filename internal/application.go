package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/telemetry"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one console game session.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	shutdownTelemetry, err := telemetry.Init(conf.Telemetry)
	if err != nil {
		return fmt.Errorf("could not init telemetry: %w", err)
	}

	defer func() {
		if err = shutdownTelemetry(context.Background()); err != nil {
			log.Error("could not shutdown telemetry", "error", err)
		}
	}()

	moveBook, closeBook, err := initMoveBook(ctx, log, conf.Redis)
	if err != nil {
		return err
	}
	defer closeBook()

	botService, err := service.NewBotService(logger, moveBook, minimax.WithMemo())
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	gamePlayService := service.NewGamePlayService(logger, botService)

	server := console.New(logger, gamePlayService, console.Options{
		Mode:          conf.Mode,
		ComputerFirst: conf.ComputerFirst,
	})

	err = server.Start(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		log.Info("Application context canceled, shutting down")
		return nil
	}

	return err
}

// initMoveBook connects the Redis book when enabled and falls back to memory.
func initMoveBook(ctx context.Context, log *slog.Logger, conf config.Redis) (repository.MoveBook, func(), error) {
	if !conf.Enabled {
		log.Info("Using in-memory move book")
		return repository.NewMemoryMoveBook(), func() {}, nil
	}

	redisAddrString := conf.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis move book", "addr", redisAddrString, "ttl", conf.TTL)

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewMoveBookRepository(redisStorage.Connection, conf.TTL), closeStorage, nil
}
