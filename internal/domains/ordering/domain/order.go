package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var (
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrMissingOrderID  = errors.New("order id is required")
)

// Statuses lists every known status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus normalizes a raw status literal.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order is the priced order header plus its line items.
type Order struct {
	ID                  string
	UserID              string
	RestaurantID        string
	Status              Status
	TotalAmount         decimal.Decimal
	DeliveryFee         decimal.Decimal
	DeliveryAddress     string
	SpecialInstructions string
	Items               []OrderItem
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem is a line of an order. UnitPrice is the menu price at placement time.
type OrderItem struct {
	ID                  string
	OrderID             string
	MenuItemID          string
	Quantity            int
	UnitPrice           decimal.Decimal
	SpecialInstructions string
}

// LineTotal returns unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GrandTotal adds the delivery fee to the item total. It is never persisted.
func (o *Order) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.DeliveryFee)
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID string) bool {
	return o != nil && o.UserID != "" && o.UserID == userID
}

// UpdateStatus accepts any known status. No transition table is enforced.
func (o *Order) UpdateStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// Clone returns a deep copy so adapters never share item slices.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Items != nil {
		clone.Items = append([]OrderItem(nil), o.Items...)
	}
	return &clone
}
