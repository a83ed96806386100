package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	dentallabserver "github.com/Apurer/dentallab-tracker/go"
	platformobservability "github.com/Apurer/dentallab-tracker/internal/platform/observability"
)

// ServiceName identifies the API in telemetry.
const ServiceName = "dentallab-api"

const shutdownTimeout = 10 * time.Second

// Run boots the DentalLab HTTP API with observability and storage wired and
// serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  ServiceName,
		Environment:  cfg.Environment,
		TraceExport:  cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		LogLevel:     platformobservability.ParseLevel(cfg.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	components, err := Build(ctx, cfg, logger, instruments)
	if err != nil {
		return err
	}
	defer components.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(components),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("DentalLab API listening",
		slog.String("addr", srv.Addr),
		slog.String("slot_driver", components.SlotDriver),
		slog.Bool("archive", components.Files.ArchiveEnabled()),
	)
	if err := serve(ctx, srv); err != nil {
		logger.Error("DentalLab API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	}
	logger.Info("DentalLab API stopped")
	return nil
}

// NewHandler builds the gin engine serving components.
func NewHandler(components *Components) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName))
	return dentallabserver.NewRouterWithGinEngine(router, dentallabserver.ApiHandleFunctions{
		OrdersAPI:      dentallabserver.NewOrdersAPI(components.Orders, components.Files, components.Preferences),
		PreferencesAPI: dentallabserver.NewPreferencesAPI(components.Preferences),
	})
}

// serve runs srv until it fails or ctx is cancelled, then drains open
// requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
