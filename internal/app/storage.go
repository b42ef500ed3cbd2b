package app

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-taskboard/internal/config"
	"github.com/adanyl0v/go-taskboard/internal/storage"
)

var globalSlot storage.Slot

// MustOpenStorage opens the slot of the configured backend, connecting to
// postgres or redis first when they back it.
func MustOpenStorage() {
	cfg := config.Global().Storage

	switch cfg.Backend {
	case config.BackendPostgres:
		MustConnectPostgres()

		slot := storage.NewPostgresSlot(globalLogger, globalPostgresPool)
		err := slot.EnsureTable(context.Background())
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to ensure slot table")
			panic(err)
		}
		globalSlot = slot
	case config.BackendRedis:
		MustConnectRedis()
		globalSlot = storage.NewRedisSlot(globalLogger, globalRedisClient)
	case config.BackendSQLite:
		slot, err := storage.NewSQLiteSlot(cfg.SQLitePath)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.SQLitePath).
				Msg("failed to open sqlite slot")
			panic(err)
		}
		globalSlot = slot
	case config.BackendFile:
		slot, err := storage.NewFileSlot(cfg.FileDir)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("dir", cfg.FileDir).
				Msg("failed to open file slot")
			panic(err)
		}
		globalSlot = slot
	case config.BackendMemory:
		globalSlot = storage.NewMemorySlot()
	default:
		globalLogger.Error().
			Str("backend", cfg.Backend).
			Msg("unknown storage backend")
		panic(fmt.Errorf("unknown storage backend: %s", cfg.Backend))
	}

	globalLogger.Info().
		Str("backend", cfg.Backend).
		Str("namespace", cfg.Namespace).
		Msg("opened storage")
}

func CloseStorage() {
	err := globalSlot.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage")
	}

	if globalPostgresPool != nil {
		DisconnectPostgres()
	}
	globalLogger.Info().Msg("closed storage")
}
