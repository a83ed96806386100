package api

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	sqlitestore "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/persistence/sqlite"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/platform/config"
)

// Slot drivers accepted by DENTALLAB_SLOT_DRIVER.
const (
	SlotMemory   = "memory"
	SlotSQLite   = "sqlite"
	SlotPostgres = "postgres"
	SlotMySQL    = "mysql"
	SlotRedis    = "redis"
)

// Archive drivers accepted by DENTALLAB_ARCHIVE_DRIVER. Empty disables the
// archive.
const (
	ArchiveNone = ""
	ArchiveFS   = "fs"
	ArchiveS3   = "s3"
)

// Config carries environment-driven settings for the API process and the
// CLI.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	TraceExporter string `env:"OTEL_TRACES_EXPORTER" envDefault:"otlp"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure  bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`

	SlotDriver     string `env:"DENTALLAB_SLOT_DRIVER" envDefault:"sqlite"`
	SQLitePath     string `env:"DENTALLAB_SQLITE_PATH" envDefault:"dentallab.db"`
	PostgresDSN    string `env:"POSTGRES_DSN"`
	MySQLDSN       string `env:"MYSQL_DSN"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"dentallab:"`
	OrdersKey      string `env:"DENTALLAB_ORDERS_KEY" envDefault:"dentallab_orders"`
	LanguageKey    string `env:"DENTALLAB_LANGUAGE_KEY" envDefault:"dl_lang"`

	ArchiveDriver     string `env:"DENTALLAB_ARCHIVE_DRIVER"`
	ArchiveDir        string `env:"DENTALLAB_ARCHIVE_DIR" envDefault:"archive"`
	S3Bucket          string `env:"DENTALLAB_S3_BUCKET"`
	S3Region          string `env:"DENTALLAB_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint        string `env:"DENTALLAB_S3_ENDPOINT"`
	S3PathStyle       bool   `env:"DENTALLAB_S3_PATH_STYLE"`
	S3AccessKeyID     string `env:"DENTALLAB_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"DENTALLAB_S3_SECRET_ACCESS_KEY"`
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Port:           "8080",
		Environment:    "local",
		LogLevel:       "info",
		TraceExporter:  "otlp",
		SlotDriver:     SlotSQLite,
		SQLitePath:     sqlitestore.DefaultPath,
		RedisAddr:      "localhost:6379",
		RedisKeyPrefix: "dentallab:",
		OrdersKey:      application.DefaultSlotKey,
		LanguageKey:    application.DefaultLanguageKey,
		ArchiveDir:     "archive",
		S3Region:       "us-east-1",
	}
}

// LoadConfig reads an optional .env file, then environment variables, and
// validates the result.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.SlotDriver = strings.ToLower(strings.TrimSpace(cfg.SlotDriver))
	cfg.ArchiveDriver = strings.ToLower(strings.TrimSpace(cfg.ArchiveDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks basic constraints.
func (c Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %q", c.Port)
	}
	switch c.SlotDriver {
	case SlotMemory, SlotSQLite, SlotPostgres, SlotMySQL, SlotRedis:
	default:
		return fmt.Errorf("DENTALLAB_SLOT_DRIVER must be one of memory, sqlite, postgres, mysql, redis; got %q", c.SlotDriver)
	}
	switch c.ArchiveDriver {
	case ArchiveNone, ArchiveFS:
	case ArchiveS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return errors.New("DENTALLAB_S3_BUCKET is required when DENTALLAB_ARCHIVE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("DENTALLAB_ARCHIVE_DRIVER must be empty, fs or s3; got %q", c.ArchiveDriver)
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
