package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/productgrid/internal/config"
	"github.com/JonMunkholm/productgrid/internal/core"
	_ "github.com/JonMunkholm/productgrid/internal/core/tables" // Register all layouts
	"github.com/JonMunkholm/productgrid/internal/logging"
	"github.com/JonMunkholm/productgrid/internal/seed"
	"github.com/JonMunkholm/productgrid/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	if _, ok := core.Get(cfg.View.DefaultLayout); !ok {
		slog.Error("unknown default layout", "layout", cfg.View.DefaultLayout)
		os.Exit(1)
	}

	rows, err := loadRows(context.Background(), cfg.Seed)
	if err != nil {
		slog.Error("failed to load seed rows", "error", err, "hint", core.FormatUserError(err))
		os.Exit(1)
	}

	store, err := core.NewRowStore(rows)
	if err != nil {
		slog.Error("failed to build row store", "error", err, "hint", core.FormatUserError(err))
		os.Exit(1)
	}

	service, err := core.NewService(store, cfg.View.PageSize)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	slog.Info("layouts registered", "count", core.LayoutCount(), "rows", store.Len())
	for _, l := range core.All() {
		slog.Debug("layout", "key", l.Key, "columns", l.Schema.Len())
	}

	server := web.NewServer(service, cfg)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartSessionSweeper(jobCtx, core.SweepConfig{
		TTL:      cfg.View.SessionTTL,
		Interval: cfg.View.SweepInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadRows returns the built-in products, or reads them once from
// Postgres when a seed database is configured.
func loadRows(ctx context.Context, cfg config.SeedConfig) ([]core.Row, error) {
	if cfg.DatabaseURL == "" {
		slog.Info("using built-in product rows")
		return seed.Products(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse seed database URL: %w", err)
	}
	poolConfig.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to seed database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping seed database: %w", err)
	}

	rows, err := seed.LoadPostgres(ctx, pool, cfg.Query)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded seed rows from database", "rows", len(rows), "database", poolConfig.ConnConfig.Database)
	return rows, nil
}
