package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"eventpass/config"
	"eventpass/internal/repository/postgres"
	"eventpass/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolConfig{MaxOpenConns: 2})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	svc := services.NewEventService(postgres.NewEventRepository(db), postgres.NewAttendeeRepository(db), cfg.ContextTimeout)
	created, skipped, err := seedEvents(ctx, svc)
	if err != nil {
		return err
	}
	logger.Info("database seeded", "created", created, "skipped", skipped)
	return nil
}
