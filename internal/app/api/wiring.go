package api

import (
	"context"
	"fmt"
	"log/slog"

	archivefs "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/archive/fs"
	archives3 "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/archive/s3"
	ordermemory "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/observability"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/persistence/gormkv"
	redisstore "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/persistence/redis"
	sqlitestore "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/persistence/sqlite"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/interchange"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
	"github.com/Apurer/dentallab-tracker/internal/platform/database"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
	"github.com/Apurer/dentallab-tracker/internal/platform/migrations"
	platformobservability "github.com/Apurer/dentallab-tracker/internal/platform/observability"
)

const instrumentationScope = "internal.orders.application"

// Components are the wired services shared by the HTTP server and the CLI.
type Components struct {
	Orders      ports.Service
	Preferences *application.Preferences
	Files       *interchange.Service
	// SlotDriver is the backend actually in use after fallbacks.
	SlotDriver string

	closers []func()
}

// Close releases storage connections in reverse order of acquisition.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build wires slot storage, the order store, preferences, and the optional
// export archive. Unreachable slot backends fall back to memory with a
// warning. instruments may be nil.
func Build(ctx context.Context, cfg Config, logger *slog.Logger, instruments *platformobservability.Instruments) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}
	components := &Components{}
	slot, driver, closeSlot := buildSlotStore(ctx, cfg, logger)
	components.SlotDriver = driver
	components.closers = append(components.closers, closeSlot)

	store := application.NewStore(slot,
		application.WithSlotKey(cfg.OrdersKey),
		application.WithLogger(logger),
	)
	orders := orderobs.New(store,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer(instrumentationScope)),
		orderobs.WithMeter(instruments.Meter(instrumentationScope)),
	)
	if _, err := orders.Load(ctx); err != nil {
		components.Close()
		return nil, fmt.Errorf("load orders: %w", err)
	}
	components.Orders = orders
	components.Preferences = application.NewPreferences(slot, cfg.LanguageKey, i18n.Supported()...)

	var fileOpts []interchange.Option
	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		components.Close()
		return nil, fmt.Errorf("configure export archive: %w", err)
	}
	if archive != nil {
		fileOpts = append(fileOpts, interchange.WithArchive(archive))
		logger.Info("export archive enabled", slog.String("driver", cfg.ArchiveDriver))
	}
	components.Files = interchange.New(orders, fileOpts...)
	return components, nil
}

func buildSlotStore(ctx context.Context, cfg Config, logger *slog.Logger) (ports.SlotStore, string, func()) {
	fallback := func() (ports.SlotStore, string, func()) {
		return ordermemory.NewSlotStore(), SlotMemory, func() {}
	}
	switch cfg.SlotDriver {
	case SlotSQLite:
		store, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Warn("failed to open sqlite slot store, falling back to memory", slog.String("error", err.Error()))
			return fallback()
		}
		logger.Info("slot store configured with sqlite", slog.String("path", store.Path()))
		return store, SlotSQLite, func() { _ = store.Close() }
	case SlotPostgres, SlotMySQL:
		dialect, dsn := database.Postgres, cfg.PostgresDSN
		if cfg.SlotDriver == SlotMySQL {
			dialect, dsn = database.MySQL, cfg.MySQLDSN
		}
		db, cleanup := database.ConnectOrWarn(ctx, logger, dialect, dsn)
		if db == nil {
			return fallback()
		}
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to migrate slot schema, falling back to memory", slog.String("error", err.Error()))
			cleanup()
			return fallback()
		}
		return gormkv.NewSlotStore(db), cfg.SlotDriver, cleanup
	case SlotRedis:
		store, closeFn, err := redisstore.Connect(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisKeyPrefix,
		})
		if err != nil {
			logger.Warn("failed to connect to redis, falling back to memory", slog.String("error", err.Error()))
			return fallback()
		}
		logger.Info("slot store configured with redis", slog.String("addr", cfg.RedisAddr))
		return store, SlotRedis, func() { _ = closeFn() }
	default:
		return fallback()
	}
}

func buildArchive(ctx context.Context, cfg Config) (ports.Archive, error) {
	switch cfg.ArchiveDriver {
	case ArchiveFS:
		return archivefs.New(cfg.ArchiveDir)
	case ArchiveS3:
		return archives3.New(ctx, archives3.Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
		})
	default:
		return nil, nil
	}
}
