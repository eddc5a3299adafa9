package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

const tracerName = "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/observability/service"

// Service decorates the order builder with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core ordering service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
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
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.CreateOrder", trace.WithAttributes(
		attribute.String("order.restaurant_id", input.Request.RestaurantID),
		attribute.Int("order.line_count", len(input.Request.Items)),
		attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	s.logInfo(ctx, "creating order",
		slog.String("user.id", input.UserID),
		slog.String("restaurant.id", input.Request.RestaurantID),
		slog.Int("order.lines", len(input.Request.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to create order",
			slog.String("user.id", input.UserID),
			slog.String("restaurant.id", input.Request.RestaurantID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordCreated(ctx, result)
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID),
		slog.String("order.total", result.TotalAmount.String()))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.GetOrder", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order",
			slog.String("order.id", orderID), slog.String("user.id", userID))
	}
	s.logInfo(ctx, "order loaded", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) ListOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.ListOrdersForUser")
	defer span.End()

	result, err := s.inner.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.UpdateOrderStatus", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", orderID), slog.String("status", string(status)))
	result, err := s.inner.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", orderID))
	}
	s.metrics.recordStatusUpdate(ctx, result.Status)
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError records err on the span. Caller-caused rejections log at WARN, everything else at ERROR.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	reason := application.Reason(err)
	span.SetAttributes(attribute.String("error.reason", reason))
	level := slog.LevelWarn
	if !application.IsRejection(err) {
		level = slog.LevelError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("reason", reason), slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersCreated  metric.Int64Counter
	ordersRejected metric.Int64Counter
	orderTotal     metric.Float64Histogram
	statusUpdates  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("ordering.orders_created", metric.WithDescription("Number of orders created"))
	ordersRejected, _ := m.Int64Counter("ordering.orders_rejected", metric.WithDescription("Number of order placements that failed, by reason"))
	orderTotal, _ := m.Float64Histogram("ordering.order_total", metric.WithDescription("Item total of created orders"), metric.WithUnit("{currency}"))
	statusUpdates, _ := m.Int64Counter("ordering.status_updates", metric.WithDescription("Number of order status changes, by new status"))
	return serviceMetrics{
		ordersCreated:  ordersCreated,
		ordersRejected: ordersRejected,
		orderTotal:     orderTotal,
		statusUpdates:  statusUpdates,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, order *domain.Order) {
	attrs := metric.WithAttributes(attribute.String("order.restaurant_id", order.RestaurantID))
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, attrs)
	}
	if m.orderTotal != nil {
		total, _ := order.TotalAmount.Float64()
		m.orderTotal.Record(ctx, total, attrs)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, err error) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", application.Reason(err))))
	}
}

func (m serviceMetrics) recordStatusUpdate(ctx context.Context, status domain.Status) {
	if m.statusUpdates != nil {
		m.statusUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Service = (*Service)(nil)
