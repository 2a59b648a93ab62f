package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgiraldez/mansion-engine/internal/config"
	"github.com/mgiraldez/mansion-engine/internal/engine"
	"github.com/mgiraldez/mansion-engine/internal/logger"
	"github.com/mgiraldez/mansion-engine/internal/storage"
	"github.com/mgiraldez/mansion-engine/pkg/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	store := openStorage(cfg, log)
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	eng := engine.NewEngine(cfg, store, log)

	p := tea.NewProgram(NewConsoleUI(cfg, eng),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())

	// Engine callbacks run on the engine goroutine; p.Send only enqueues,
	// so nothing here calls back into the engine.
	eng.SetHooks(engine.Hooks{
		OnMessage: func(msg string) { p.Send(engineMessageMsg{text: msg}) },
		OnTick:    func(st engine.Status) { p.Send(statusMsg{status: st}) },
		OnEnd:     func(res state.Result) { p.Send(gameEndedMsg{result: res}) },
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// openStorage connects to Redis, falling back to in-memory storage when the
// backend is unreachable. Saves and high scores are then lost on exit.
func openStorage(cfg *config.Config, log *slog.Logger) storage.Storage {
	redisStore, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		logger.WithError(log, err).Warn("Redis unavailable, using in-memory storage", "url", cfg.RedisURL)
		return storage.NewMockStorage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisStore.WaitForConnection(ctx); err != nil {
		_ = redisStore.Close()
		logger.WithError(log, err).Warn("Redis unavailable, using in-memory storage", "url", cfg.RedisURL)
		return storage.NewMockStorage()
	}

	return redisStore
}
