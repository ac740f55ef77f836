package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"roadtrip-planner/internal/adapters/cache"
	"roadtrip-planner/internal/config"
	"roadtrip-planner/internal/platform/db"
	"roadtrip-planner/internal/platform/obs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool prepares the Postgres geocode cache and preloads it with known places.
func main() {
	os.Exit(realMain())
}

func realMain() int {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logger, err := obs.NewLogger(config.Get("APP_ENV", "development"), "dbtool")
	if err != nil {
		log.Println(err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Error("DATABASE_URL is required")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		logger.Error("open database", zap.Error(err))
		return 1
	}
	defer sqlDB.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")
	if err := initAndSeed(ctx, logger, sqlDB, seedPath); err != nil {
		logger.Error("init and seed", zap.Error(err))
		return 1
	}
	return 0
}

func initAndSeed(ctx context.Context, logger *zap.Logger, sqlDB *sql.DB, seedPath string) error {
	logger.Info("initializing database schema")
	if err := cache.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	logger.Info("seeding geocode cache", zap.String("path", seedPath))
	n, err := cache.SeedFromJSON(ctx, cache.NewSQLGeocodeCache(sqlDB), seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info("seeding complete", zap.Int("places", n))

	return nil
}
