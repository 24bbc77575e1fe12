package main

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/adapters/repositories"
	"delivery-schedule-service/internal/config"
	"delivery-schedule-service/internal/platform/db"
	"delivery-schedule-service/internal/platform/obs"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logger, err := obs.InitLogger(config.Get("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/deliveries.json")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		logger.Fatal("init and seed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	zap.L().Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	zap.L().Info("schema ready")

	zap.L().Info("seeding database", zap.String("seed_path", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	zap.L().Info("seeding complete")

	return nil
}
