package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/observability/service"

// Service decorates the order store port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the order store.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Load rehydrates the collection from storage.
func (s *Service) Load(ctx context.Context) ([]domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Load")
	defer span.End()

	result, err := s.inner.Load(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	s.logInfo(ctx, "loaded orders", slog.Int("count", len(result)))
	return result, nil
}

// Save rewrites the storage slot.
func (s *Service) Save(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.Save")
	defer span.End()

	if err := s.inner.Save(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to save orders")
	}
	s.logInfo(ctx, "saved orders")
	return nil
}

// Create stores a new order.
func (s *Service) Create(ctx context.Context, fields domain.Fields) (domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Create", attribute.String("order.clinic", fields.Clinic))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("order.clinic", fields.Clinic))
	result, err := s.inner.Create(ctx, fields)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to create order", slog.String("order.clinic", fields.Clinic))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordCreated(ctx, result.Status)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// Get returns a single order.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Get", attribute.String("order.id", id))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to get order", slog.String("order.id", id))
	}
	return result, nil
}

// Update replaces an order's fields.
func (s *Service) Update(ctx context.Context, id string, fields domain.Fields) (domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.String("order.id", id))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", id))
	result, err := s.inner.Update(ctx, id, fields)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", id))
	}
	s.metrics.recordUpdated(ctx, result.Status)
	s.logInfo(ctx, "order updated", slog.String("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

// SetStatus moves an order to another status.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.SetStatus", attribute.String("order.id", id), attribute.String("order.status", string(status)))
	defer span.End()

	s.logInfo(ctx, "changing order status", slog.String("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.SetStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to change order status", slog.String("order.id", id))
	}
	s.metrics.recordUpdated(ctx, result.Status)
	return result, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.String("order.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.metrics.recordDeleted(ctx, 1)
	return nil
}

// Clear removes every order.
func (s *Service) Clear(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.Clear")
	defer span.End()

	s.logInfo(ctx, "clearing orders")
	if err := s.inner.Clear(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to clear orders")
	}
	return nil
}

// ReplaceAll installs a new collection.
func (s *Service) ReplaceAll(ctx context.Context, orders []domain.Order) error {
	ctx, span := s.startSpan(ctx, "Service.ReplaceAll", attribute.Int("order.batch.size", len(orders)))
	defer span.End()

	s.logInfo(ctx, "replacing orders", slog.Int("count", len(orders)))
	if err := s.inner.ReplaceAll(ctx, orders); err != nil {
		return s.handleError(ctx, span, err, "failed to replace orders", slog.Int("count", len(orders)))
	}
	return nil
}

// Import prepends a batch of orders.
func (s *Service) Import(ctx context.Context, orders []domain.Order) (int, error) {
	ctx, span := s.startSpan(ctx, "Service.Import", attribute.Int("order.batch.size", len(orders)))
	defer span.End()

	n, err := s.inner.Import(ctx, orders)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to import orders", slog.Int("count", len(orders)))
	}
	span.SetAttributes(attribute.Int("order.imported", n))
	s.metrics.recordImported(ctx, n)
	s.logInfo(ctx, "imported orders", slog.Int("count", n))
	return n, nil
}

// LoadSample installs the demo data set.
func (s *Service) LoadSample(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.LoadSample")
	defer span.End()

	if err := s.inner.LoadSample(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to load sample orders")
	}
	s.logInfo(ctx, "sample orders loaded")
	return nil
}

// List returns every order.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// Query returns the filtered, sorted view.
func (s *Service) Query(ctx context.Context, q domain.Query) ([]domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Query",
		attribute.String("query.status", q.Status),
		attribute.String("query.clinic", q.Clinic),
		attribute.String("query.sort", string(q.Sort)),
	)
	defer span.End()

	result, err := s.inner.Query(ctx, q)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to query orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// Summary counts orders per status.
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	ctx, span := s.startSpan(ctx, "Service.Summary")
	defer span.End()

	result, err := s.inner.Summary(ctx)
	if err != nil {
		return domain.Summary{}, s.handleError(ctx, span, err, "failed to summarize orders")
	}
	return result, nil
}

// Clinics lists distinct clinic names.
func (s *Service) Clinics(ctx context.Context) ([]string, error) {
	ctx, span := s.startSpan(ctx, "Service.Clinics")
	defer span.End()

	result, err := s.inner.Clinics(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list clinics")
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersCreated  metric.Int64Counter
	ordersUpdated  metric.Int64Counter
	ordersDeleted  metric.Int64Counter
	ordersImported metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	ordersUpdated, _ := m.Int64Counter("orders.service.updated", metric.WithDescription("Number of order edits and status changes"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of delete requests"))
	ordersImported, _ := m.Int64Counter("orders.service.imported", metric.WithDescription("Number of orders installed by import"))
	return serviceMetrics{
		ordersCreated:  ordersCreated,
		ordersUpdated:  ordersUpdated,
		ordersDeleted:  ordersDeleted,
		ordersImported: ordersImported,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersCreated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersUpdated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context, n int) {
	addCounter(ctx, m.ordersDeleted, int64(n))
}

func (m serviceMetrics) recordImported(ctx context.Context, n int) {
	addCounter(ctx, m.ordersImported, int64(n))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
