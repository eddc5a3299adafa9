package ports

import (
	"context"
	"time"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published after an order change has been committed.
type OrderEvent struct {
	Type       string
	OrderID    string
	UserID     string
	Status     domain.Status
	Total      string
	OccurredAt time.Time
}

// EventPublisher fans committed order changes out to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// NoopEventPublisher drops every event.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, OrderEvent) error { return nil }
