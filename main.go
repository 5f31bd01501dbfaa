package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/craftly-living/backend/api"
	"github.com/craftly-living/backend/config"
	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/craftly-living/backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using process environment")
	}

	env := config.New()
	setupLogging(env)
	log.Info().Msg("Initializing app...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var fetcher config.ParameterFetcher
	if config.GetString(env, "DATABASE_URL", "") == "" && config.GetString(env, "DATABASE_URL_SSM_PARAMETER", "") != "" {
		ssmFetcher, err := config.NewSSMFetcher(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing AWS Parameter Store client")
		}
		fetcher = ssmFetcher
	}

	cfg, err := config.Load(ctx, env, fetcher)
	if err != nil {
		var cfgErr *errs.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Fatal().Str("key", cfgErr.Key).Err(err).Msg("Invalid configuration")
		}
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	db, err := database.Open(ctx, database.Options{
		DSN:             cfg.DatabaseURL,
		ReplicaDSN:      cfg.DatabaseReplicaURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	// If generating models, run generation and exit
	if cfg.GenerateModels {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateQueries(db, "./query"); err != nil {
			log.Fatal().Err(err).Msg("Error generating query helpers")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		if _, err := models.ColumnMismatchReport(db, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error running migrations")
	}

	store := database.New(db)

	if cfg.SeedDemoUser {
		if _, err := services.EnsureDemoUser(ctx, store, cfg.DemoUsername, cfg.DemoPassword); err != nil {
			log.Fatal().Err(err).Msg("Error seeding demo user")
		}
	}

	server := api.NewServer(store, cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Serve)
	g.Go(func() error {
		// Wait for SIGINT/SIGTERM or a server failure
		<-gctx.Done()
		server.ShutdownGracefully(30 * time.Second)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
	log.Info().Msg("Closing server")
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogging(env map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(env, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(env, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
