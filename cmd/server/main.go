package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/minibasket/internal/config"
	"github.com/playperu/minibasket/internal/database"
	"github.com/playperu/minibasket/internal/handler/health"
	"github.com/playperu/minibasket/internal/live"
	"github.com/playperu/minibasket/internal/migrations"
	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scorekeeper"
	"github.com/playperu/minibasket/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db, logger); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewDocStore(db)
	if err := server.SeedScorer(ctx, logger, store, cfg.ScorerEmail, cfg.ScorerPasswordHash); err != nil {
		return err
	}

	// --- Redis (optional) ---
	var rdb *redis.Client
	var publisher *live.Publisher
	if cfg.RedisURL != "" {
		rdb, err = live.Open(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		publisher = live.NewPublisher(rdb, logger)
	}

	// --- Game ---
	reducer := minibasket.NewReducer(minibasket.WithRecomputeOnRemove(cfg.RecomputeOnRemove))

	initial, err := resumeGame(ctx, logger, store, publisher)
	switch {
	case errors.Is(err, server.ErrNotFound):
		initial = reducer.Initial()
		logger.Info("no saved game, starting fresh", "game_id", initial.ID)
	case err != nil:
		return fmt.Errorf("loading current game: %w", err)
	default:
		initial, _ = reducer.Reduce(initial, minibasket.RestoreGame{Game: initial})
		logger.Info("resumed saved game", "game_id", initial.ID, "phase", initial.Phase)
	}

	keeper := scorekeeper.New(logger, reducer, initial, store, cfg.AutosaveDelay)
	if publisher != nil {
		keeper.Subscribe(publisher.Enqueue)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Store:       store,
		Keeper:      keeper,
		SPADir:      cfg.SPADir,
		CORSOrigins: cfg.CORSOrigins,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			"sqlite": health.DB(db),
			"redis":  health.Redis(rdb),
		}).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	if publisher != nil {
		g.Go(func() error {
			return publisher.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}

		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := keeper.Flush(flushCtx); err != nil {
			return fmt.Errorf("saving game on shutdown: %w", err)
		}
		logger.Info("game saved")
		return nil
	})

	return g.Wait()
}

// resumeGame loads the saved game, preferring the Redis mirror when it holds
// a later state of the same game or the database has none.
func resumeGame(ctx context.Context, logger *slog.Logger, store *server.DocStore, publisher *live.Publisher) (minibasket.Game, error) {
	saved, err := store.LoadCurrent(ctx)
	if err != nil && !errors.Is(err, server.ErrNotFound) {
		return minibasket.Game{}, err
	}
	if publisher == nil {
		return saved, err
	}

	cached, cerr := publisher.Current(ctx)
	switch {
	case errors.Is(cerr, live.ErrNotFound):
		return saved, err
	case cerr != nil:
		logger.Warn("reading live snapshot failed", "error", cerr)
		return saved, err
	case err != nil || live.Newer(cached, saved):
		logger.Info("resuming from live snapshot", "game_id", cached.ID, "updated_at", cached.UpdatedAt)
		return cached, nil
	}
	return saved, nil
}
