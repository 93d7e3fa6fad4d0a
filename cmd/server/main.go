package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tripsync/tripsync/internal/config"
	"github.com/tripsync/tripsync/internal/server"
	"github.com/tripsync/tripsync/internal/service"
	"github.com/tripsync/tripsync/internal/storage/sqlite"
	"github.com/tripsync/tripsync/pkg/logging"
)

func main() {
	cfg := config.Load()

	// Setup structured logging
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		logging.SetupJSON(level)
	} else {
		logging.SetupWithLevel(level)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	trips := service.NewTripService(store)
	expenses := service.NewExpenseService(store)
	router := server.New(trips, expenses).Router()

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := router.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
