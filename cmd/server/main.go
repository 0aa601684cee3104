package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cinelabs/cinescope/internal/cache"
	"github.com/cinelabs/cinescope/internal/config"
	"github.com/cinelabs/cinescope/internal/handler"
	"github.com/cinelabs/cinescope/internal/recommend"
	"github.com/cinelabs/cinescope/internal/repository"
	"github.com/cinelabs/cinescope/internal/router"
	"github.com/cinelabs/cinescope/internal/service"
	"github.com/cinelabs/cinescope/internal/session"
	"github.com/cinelabs/cinescope/internal/userstate"
	"github.com/cinelabs/cinescope/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, logger); err != nil {
		logger.Fatal().Err(err).Msg("database not ready")
	}
	logger.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate down")
		}
		logger.Info().Msg("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate up")
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool, cfg.DatasetPath, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to check seed")
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	viewCache := cache.NewCache(redisClient, cfg.CacheTTL)
	if err := viewCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("redis not ready")
	}
	logger.Info().Msg("connected to Redis")

	// ------------ Wiring ---------------
	repo := repository.New(pool)

	sess, err := session.New(ctx, repo, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	users := userstate.NewManager(repo, logger)
	strategy := recommend.NewRandomSampler()

	svc := service.New(sess, users, viewCache, strategy, logger, service.Options{
		TrendingSize:       cfg.TrendingSize,
		RecommendationSize: cfg.RecommendationSize,
	})

	h := handler.NewHandler(svc, cfg.MaxStarRating)

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logger.Info().Int("attempt", i+1).Msg("waiting for database...")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, datasetPath string, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return fmt.Errorf("check movies count: %w", err)
	}
	if count > 0 {
		logger.Info().Int("movies", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool, datasetPath, logger)
}
