package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "animal-adoption/internal/adapters/storage/postgres"
	"animal-adoption/internal/platform/config"
	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/router"
)

// @title Animal Adoption API
// @version 1.0
// @description Catálogo de animales en adopción y registro de solicitudes de adopción.
// @BasePath /
func main() {
	config.LoadDotEnv()
	cfg := config.FromEnv()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Env:    string(cfg.Env),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()

	if err != nil {
		log.Error("server stopped with error", logger.Fields{"error": err})
		os.Exit(1)
	}
}

// run levanta el servidor y bloquea hasta que ctx se cancele o el listener falle.
// Los recursos abiertos acá se cierran antes de volver.
func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	opts := router.Options{
		SeedEnabled: cfg.SeedEnabled(),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	}

	if cfg.DatabaseURL != "" {
		db, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}
		defer db.Close()

		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr, "seed_enabled": opts.SeedEnabled})
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
