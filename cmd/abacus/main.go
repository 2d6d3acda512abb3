package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/seantiz/abacus/internal/api"
	"github.com/seantiz/abacus/internal/config"
	"github.com/seantiz/abacus/internal/session"
	"github.com/seantiz/abacus/internal/store"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("abacus: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"precision", cfg.Precision,
	)

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	sessions := session.NewManager(db, cfg.Precision, logger)
	srv := api.NewServer(cfg.ListenAddr, db, sessions, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
