package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/craftly-living/backend/errs"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

// GetBool accepts anything strconv.ParseBool does.
func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return asBool
}

// ParameterFetcher resolves secrets that are not set in the environment.
type ParameterFetcher interface {
	FetchParameter(ctx context.Context, name string) (string, error)
}

type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int64

	DatabaseURL        string
	DatabaseReplicaURL string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration

	SeedDemoUser bool
	DemoUsername string
	DemoPassword string

	LogLevel  string
	LogFormat string

	GenerateModels       bool
	GenerateColumnReport bool
}

const defaultMaxBodyBytes = 1 << 20

// Load builds the typed configuration from env. DATABASE_URL is required; when
// it is unset and DATABASE_URL_SSM_PARAMETER names a parameter, the value is
// read through fetcher instead. fetcher may be nil when SSM is not in use.
func Load(ctx context.Context, env map[string]string, fetcher ParameterFetcher) (Config, error) {
	cfg := Config{
		Port:         GetString(env, "PORT", "8080"),
		ReadTimeout:  time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout: time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		MaxBodyBytes: int64(GetInt(env, "MAX_BODY_BYTES", defaultMaxBodyBytes)),

		DatabaseURL:        strings.TrimSpace(GetString(env, "DATABASE_URL", "")),
		DatabaseReplicaURL: strings.TrimSpace(GetString(env, "DATABASE_REPLICA_URL", "")),
		MaxOpenConns:       GetInt(env, "DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:       GetInt(env, "DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime:    time.Duration(GetInt(env, "DB_CONN_MAX_LIFETIME_MINUTES", 60)) * time.Minute,

		SeedDemoUser: GetBool(env, "SEED_DEMO_USER", true),
		DemoUsername: GetString(env, "DEMO_USERNAME", "demo"),
		DemoPassword: GetString(env, "DEMO_PASSWORD", "demo-password"),

		LogLevel:  GetString(env, "LOG_LEVEL", "info"),
		LogFormat: GetString(env, "LOG_FORMAT", "json"),

		GenerateModels:       GetBool(env, "GENERATE_MODELS", false),
		GenerateColumnReport: GetBool(env, "GENERATE_COLUMN_REPORT", false),
	}

	if cfg.DatabaseURL == "" {
		parameter := strings.TrimSpace(GetString(env, "DATABASE_URL_SSM_PARAMETER", ""))
		if parameter == "" || fetcher == nil {
			return Config{}, errs.NewConfigMissingError("DATABASE_URL")
		}
		value, err := fetcher.FetchParameter(ctx, parameter)
		if err != nil {
			return Config{}, errs.NewConfigInvalidError("DATABASE_URL_SSM_PARAMETER", err.Error())
		}
		cfg.DatabaseURL = strings.TrimSpace(value)
		if cfg.DatabaseURL == "" {
			return Config{}, errs.NewConfigInvalidError("DATABASE_URL_SSM_PARAMETER", "parameter "+parameter+" is empty")
		}
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, errs.NewConfigInvalidError("PORT", "must be a number")
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, errs.NewConfigInvalidError("MAX_BODY_BYTES", "must be positive")
	}
	if cfg.SeedDemoUser && cfg.DemoUsername == "" {
		return Config{}, errs.NewConfigMissingError("DEMO_USERNAME")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
