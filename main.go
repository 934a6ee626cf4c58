// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/db"
	"github.com/danielhkuo/roundvote/handlers"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/registry"
	"github.com/danielhkuo/roundvote/router"
	"github.com/danielhkuo/roundvote/voting"
)

func main() {
	var err error

	// Load .env from CWD if present; otherwise use environment as-is
	if _, statErr := os.Stat(".env"); statErr == nil {
		_ = godotenv.Load(".env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Event log is optional
	var store *db.Store
	if cfg.Persistent() {
		var dbConn *sql.DB
		dbConn, err = db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		store, err = db.NewStore(dbConn)
		if err != nil {
			slog.Error("event store init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
	} else {
		slog.Info("No database configured, event log disabled")
	}

	// Adapter registry with the built-in round shapes
	owner := voting.Address(cfg.RegistryOwner)
	reg := registry.New(owner, handlers.Notifier(store))
	if err := reg.RegisterBuiltins(owner); err != nil {
		slog.Error("adapter registration failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(handlers.NewDeployments(reg, store), cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight votes finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "registry_owner", owner)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
