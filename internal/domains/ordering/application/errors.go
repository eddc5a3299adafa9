package application

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var (
	// ErrInvalidRequest signals a structurally malformed request.
	ErrInvalidRequest       = errors.New("invalid order request")
	ErrNotFound             = errors.New("not found")
	ErrRestaurantClosed     = errors.New("restaurant is currently closed")
	ErrItemsNotFound        = errors.New("one or more menu items not found")
	ErrCrossRestaurantOrder = errors.New("all items must be from the same restaurant")
	ErrItemUnavailable      = errors.New("one or more items are not available")
	ErrMinimumOrderNotMet   = errors.New("minimum order amount not met")
	ErrForbidden            = errors.New("access denied")
	// ErrPersistenceFailure signals the order store could not record the order.
	ErrPersistenceFailure = errors.New("failed to persist order")
	// ErrIdempotencyConflict signals an idempotency key reused with a different request.
	ErrIdempotencyConflict = ports.ErrIdempotencyConflict
)

// MinimumOrderError reports the restaurant minimum and the computed total, both exact.
type MinimumOrderError struct {
	Minimum decimal.Decimal
	Total   decimal.Decimal
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("minimum order amount is %s, current total: %s", e.Minimum.String(), e.Total.String())
}

func (e *MinimumOrderError) Is(target error) bool {
	return target == ErrMinimumOrderNotMet
}

// Shortfall is how much more must be ordered to reach the minimum.
func (e *MinimumOrderError) Shortfall() decimal.Decimal {
	return e.Minimum.Sub(e.Total)
}

// IsRejection reports whether err is one of the expected, caller-caused outcomes.
func IsRejection(err error) bool {
	for _, kind := range []error{
		ErrInvalidRequest,
		ErrNotFound,
		ErrRestaurantClosed,
		ErrItemsNotFound,
		ErrCrossRestaurantOrder,
		ErrItemUnavailable,
		ErrMinimumOrderNotMet,
		ErrForbidden,
		ErrIdempotencyConflict,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Reason returns a short label for the error kind, used for metrics and workflow error types.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRestaurantClosed):
		return "restaurant_closed"
	case errors.Is(err, ErrItemsNotFound):
		return "items_not_found"
	case errors.Is(err, ErrCrossRestaurantOrder):
		return "cross_restaurant_order"
	case errors.Is(err, ErrItemUnavailable):
		return "item_unavailable"
	case errors.Is(err, ErrMinimumOrderNotMet):
		return "minimum_order_not_met"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "internal"
	}
}

// KindForReason is the inverse of Reason for the sentinel kinds. It returns nil for unknown reasons.
func KindForReason(reason string) error {
	for _, kind := range []error{
		ErrInvalidRequest,
		ErrNotFound,
		ErrRestaurantClosed,
		ErrItemsNotFound,
		ErrCrossRestaurantOrder,
		ErrItemUnavailable,
		ErrMinimumOrderNotMet,
		ErrForbidden,
		ErrIdempotencyConflict,
		ErrPersistenceFailure,
	} {
		if Reason(kind) == reason {
			return kind
		}
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingRestaurantID) ||
		errors.Is(err, domain.ErrEmptyItems) ||
		errors.Is(err, domain.ErrMissingMenuItemID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrMissingUserID) ||
		errors.Is(err, domain.ErrMissingOrderID) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
