package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/craftly-living/backend/models"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Options configures the Postgres connection pool.
type Options struct {
	DSN             string
	ReplicaDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// Open connects to Postgres, applies the pool limits, registers the read
// replica when one is configured and pings the primary.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	slow := opts.SlowThreshold
	if slow == 0 {
		slow = 10 * time.Second
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	if opts.ReplicaDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  opts.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(opts.MaxOpenConns).
			SetMaxIdleConns(opts.MaxIdleConns).
			SetConnMaxLifetime(opts.ConnMaxLifetime)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		zlog.Info().Msg("Read replica registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	zlog.Info().
		Int("maxOpenConns", opts.MaxOpenConns).
		Int("maxIdleConns", opts.MaxIdleConns).
		Dur("connMaxLifetime", opts.ConnMaxLifetime).
		Msg("Database connection established")
	return db, nil
}

// Migrate creates or updates the users, renovation_projects and builders tables.
func Migrate(db *gorm.DB) error {
	zlog.Info().Msg("Running AutoMigrate")
	if err := db.AutoMigrate(&models.User{}, &models.RenovationProject{}, &models.Builder{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	zlog.Info().Msg("Migrations complete")
	return nil
}
