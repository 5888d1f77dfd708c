package main

import (
	"context"
	"flag"
	"os"

	pg "animal-adoption/internal/adapters/storage/postgres"
	"animal-adoption/internal/platform/config"
	"animal-adoption/internal/platform/logger"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, status")
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.FromEnv()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName + "-migrate",
	})

	if cfg.DatabaseURL == "" {
		log.Error("DB_DSN (or DATABASE_URL) is required", nil)
		os.Exit(1)
	}

	db, err := pg.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", logger.Fields{"error": err})
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	switch *command {
	case "up":
		err = pg.Migrate(ctx, db)
	case "down":
		err = pg.Rollback(ctx, db)
	case "status":
		err = pg.Status(ctx, db)
	default:
		log.Error("unknown command, use: up, down, status", logger.Fields{"command": *command})
		os.Exit(2)
	}

	if err != nil {
		log.Error("migration command failed", logger.Fields{"command": *command, "error": err})
		os.Exit(1)
	}
	log.Info("migration command done", logger.Fields{"command": *command})
}
