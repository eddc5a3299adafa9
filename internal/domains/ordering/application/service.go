package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

// DefaultIdempotencyTTL bounds how long an idempotency key replays its order.
const DefaultIdempotencyTTL = 24 * time.Hour

// Service is the order builder: it validates, prices and persists orders.
type Service struct {
	restaurants    ports.RestaurantDirectory
	menu           ports.MenuCatalog
	orders         ports.OrderStore
	idempotency    ports.IdempotencyStore
	idempotencyTTL time.Duration
	events         ports.EventPublisher
	logger         *slog.Logger
	now            func() time.Time
}

type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key replay for CreateOrder.
func WithIdempotencyStore(store ports.IdempotencyStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.idempotency = store
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the order builder with its collaborators.
func NewService(restaurants ports.RestaurantDirectory, menu ports.MenuCatalog, orders ports.OrderStore, opts ...Option) *Service {
	s := &Service{
		restaurants:    restaurants,
		menu:           menu,
		orders:         orders,
		idempotencyTTL: DefaultIdempotencyTTL,
		events:         ports.NoopEventPublisher,
		logger:         slog.New(slog.DiscardHandler),
		now:            time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the request against current restaurant and menu state, prices it,
// and persists header and items as one unit.
func (s *Service) CreateOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, mapError(domain.ErrMissingUserID)
	}
	req := input.Request.Normalize()
	if err := req.Validate(); err != nil {
		return nil, mapError(err)
	}

	var claim *ports.IdempotencyRecord
	key := strings.TrimSpace(input.IdempotencyKey)
	if key != "" && s.idempotency != nil {
		fingerprint, err := FingerprintOrderRequest(req)
		if err != nil {
			return nil, fmt.Errorf("fingerprint order request: %w", err)
		}
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load idempotency key: %w", err)
		}
		if existing != nil {
			return s.replay(ctx, existing, userID, fingerprint)
		}
		now := s.now()
		claim = &ports.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			RequestHash: fingerprint,
			ExpiresAt:   now.Add(s.idempotencyTTL),
			CreatedAt:   now,
		}
	}

	order, held, err := s.placeOrder(ctx, userID, req, claim)
	if err != nil {
		return nil, err
	}
	if held != nil {
		// A concurrent request with the same key committed first.
		return s.replay(ctx, held, userID, claim.RequestHash)
	}

	s.publish(ctx, ports.OrderEvent{
		Type:       ports.EventOrderPlaced,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.TotalAmount.String(),
		OccurredAt: s.now(),
	})
	return order, nil
}

func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord, userID, fingerprint string) (*domain.Order, error) {
	if record.UserID != userID || record.RequestHash != fingerprint {
		return nil, ErrIdempotencyConflict
	}
	order, err := s.orders.FindByID(ctx, record.OrderID)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// placeOrder prices and persists the order. When claim is set the idempotency key is written in
// the same unit of work; if another order already holds it, nothing is written and the holding
// record is returned instead.
func (s *Service) placeOrder(ctx context.Context, userID string, req domain.OrderRequest, claim *ports.IdempotencyRecord) (*domain.Order, *ports.IdempotencyRecord, error) {
	restaurant, err := s.restaurants.FindByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: restaurant %q", ErrNotFound, req.RestaurantID)
		}
		return nil, nil, fmt.Errorf("lookup restaurant %q: %w", req.RestaurantID, err)
	}
	if !restaurant.IsOpen {
		return nil, nil, ErrRestaurantClosed
	}

	ids := req.DistinctMenuItemIDs()
	items, err := s.menu.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup menu items: %w", err)
	}
	if len(items) != len(ids) {
		return nil, nil, ErrItemsNotFound
	}
	byID := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		if item.RestaurantID != req.RestaurantID {
			return nil, nil, ErrCrossRestaurantOrder
		}
		byID[item.ID] = item
	}
	for _, item := range items {
		if !item.IsAvailable {
			return nil, nil, ErrItemUnavailable
		}
	}

	order, err := priceOrder(userID, req, restaurant, byID)
	if err != nil {
		return nil, nil, err
	}

	var created *domain.Order
	var held *ports.IdempotencyRecord
	err = s.orders.Atomically(ctx, func(ctx context.Context, w ports.OrderWriter) error {
		header, err := w.Create(ctx, order)
		if err != nil {
			return err
		}
		if claim != nil {
			record := *claim
			record.OrderID = header.ID
			existing, err := w.ClaimIdempotencyKey(ctx, record)
			if errors.Is(err, ports.ErrIdempotencyConflict) && existing != nil {
				held = existing
			}
			if err != nil {
				return err
			}
		}
		rows, err := w.CreateItems(ctx, header.ID, order.Items)
		if err != nil {
			return err
		}
		header.Items = rows
		created = header
		return nil
	})
	if held != nil {
		return nil, held, nil
	}
	if errors.Is(err, ErrIdempotencyConflict) {
		return nil, nil, ErrIdempotencyConflict
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return created, nil, nil
}

// priceOrder snapshots unit prices and the delivery fee and enforces the minimum order.
func priceOrder(userID string, req domain.OrderRequest, restaurant *domain.Restaurant, menu map[string]domain.MenuItem) (*domain.Order, error) {
	total := decimal.Zero
	lines := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item, ok := menu[line.MenuItemID]
		if !ok {
			return nil, ErrItemsNotFound
		}
		orderItem := domain.OrderItem{
			MenuItemID:          line.MenuItemID,
			Quantity:            line.Quantity,
			UnitPrice:           item.Price,
			SpecialInstructions: line.SpecialInstructions,
		}
		total = total.Add(orderItem.LineTotal())
		lines = append(lines, orderItem)
	}
	if total.LessThan(restaurant.MinimumOrder) {
		return nil, &MinimumOrderError{Minimum: restaurant.MinimumOrder, Total: total}
	}
	return &domain.Order{
		UserID:              userID,
		RestaurantID:        req.RestaurantID,
		Status:              domain.StatusPending,
		TotalAmount:         total,
		DeliveryFee:         restaurant.DeliveryFee,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		Items:               lines,
	}, nil
}

// GetOrder loads an order with its items for its owner.
func (s *Service) GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, mapError(domain.ErrMissingOrderID)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if !order.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListOrdersForUser returns the user's orders, newest first.
func (s *Service) ListOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, mapError(domain.ErrMissingUserID)
	}
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// UpdateOrderStatus sets any known status on an existing order.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, mapError(domain.ErrMissingOrderID)
	}
	if !status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, ports.OrderEvent{
		Type:       ports.EventOrderStatusChanged,
		OrderID:    updated.ID,
		UserID:     updated.UserID,
		Status:     updated.Status,
		Total:      updated.TotalAmount.String(),
		OccurredAt: s.now(),
	})
	return updated, nil
}

func (s *Service) publish(ctx context.Context, event ports.OrderEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order event",
			slog.String("event.type", event.Type),
			slog.String("order.id", event.OrderID),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
