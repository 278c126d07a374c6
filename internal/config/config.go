package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the tracker.
type Config struct {
	App          AppConfig
	Replay       ReplayConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// ReplayConfig controls where the roster and commands come from and where
// results go.
type ReplayConfig struct {
	UsersPath        string
	InputPath        string
	OutputPath       string
	TestingPhaseDays int
}

// PostgresConfig holds DB connection values for the result archive.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the notification mirror.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string
	Format string
}

// NotificationConfig toggles the external notification mirror.
type NotificationConfig struct {
	MirrorEnabled bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	testingDays := getEnvAsInt("TRACKER_TESTING_PHASE_DAYS", 12)
	if testingDays <= 0 {
		return nil, fmt.Errorf("invalid TRACKER_TESTING_PHASE_DAYS: %d", testingDays)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "project-tracker"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Replay: ReplayConfig{
			UsersPath:        getEnv("TRACKER_USERS_PATH", "input/database/users.json"),
			InputPath:        os.Getenv("TRACKER_INPUT_PATH"),
			OutputPath:       os.Getenv("TRACKER_OUTPUT_PATH"),
			TestingPhaseDays: testingDays,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:      os.Getenv("REDIS_ADDR"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "tracker"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Notification: NotificationConfig{
			MirrorEnabled: getEnvAsBool("NOTIFY_MIRROR_ENABLED", true),
		},
	}

	return cfg, nil
}

// Validate checks that the replay paths are usable once flags have been applied.
func (r ReplayConfig) Validate() error {
	switch {
	case r.UsersPath == "":
		return fmt.Errorf("users path is required")
	case r.InputPath == "":
		return fmt.Errorf("input path is required")
	case r.OutputPath == "":
		return fmt.Errorf("output path is required")
	}
	return nil
}

// ArchiveEnabled reports whether results should be archived to Postgres.
func (p PostgresConfig) ArchiveEnabled() bool {
	return p.DSN != ""
}

// MirrorEnabled reports whether a Redis address is configured.
func (r RedisConfig) MirrorEnabled() bool {
	return r.Addr != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
