package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"stockflow/internal/config"
	"stockflow/internal/db"
	"stockflow/internal/logger"
	"stockflow/internal/model"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("starting seed script")

	gormDB, err := db.Open(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	seeded, err := db.SeedSectors(context.Background(), gormDB)
	if err != nil {
		zlog.Fatal("failed to seed sectors", zap.Error(err))
	}

	zlog.Info("seed completed",
		zap.Int64("sectors_created", seeded),
		zap.Int64("sectors_existing", int64(len(model.DefaultSectors))-seeded),
	)
}
