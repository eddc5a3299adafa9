package handler

import (
	"errors"
	"net/http"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/http/mapper"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	sharederrors "github.com/Varun-2538/FoodieExpress/internal/shared/errors"
)

// Ordering problem types.
const (
	TypeRestaurantClosed     = "/problems/restaurant-closed"
	TypeItemsNotFound        = "/problems/items-not-found"
	TypeCrossRestaurantOrder = "/problems/cross-restaurant-order"
	TypeItemUnavailable      = "/problems/item-unavailable"
	TypeMinimumOrderNotMet   = "/problems/minimum-order-not-met"
	TypeIdempotencyConflict  = "/problems/idempotency-conflict"
)

var (
	problemRestaurantClosed     = sharederrors.New(http.StatusBadRequest, TypeRestaurantClosed, "Restaurant Closed")
	problemItemsNotFound        = sharederrors.New(http.StatusBadRequest, TypeItemsNotFound, "Menu Items Not Found")
	problemCrossRestaurantOrder = sharederrors.New(http.StatusBadRequest, TypeCrossRestaurantOrder, "Items From Several Restaurants")
	problemItemUnavailable      = sharederrors.New(http.StatusBadRequest, TypeItemUnavailable, "Item Unavailable")
	problemMinimumOrderNotMet   = sharederrors.New(http.StatusBadRequest, TypeMinimumOrderNotMet, "Minimum Order Not Met")
	problemIdempotencyConflict  = sharederrors.New(http.StatusConflict, TypeIdempotencyConflict, "Idempotency Key Reused")
)

// MapOrderingError converts order builder errors into problem details. Unclassified
// errors are left to the responder, which hides them behind a generic 500.
func MapOrderingError(err error) (sharederrors.ProblemDetail, bool) {
	var minErr *application.MinimumOrderError
	switch {
	case errors.As(err, &minErr):
		return problemMinimumOrderNotMet.
			WithDetail("Minimum order amount is " + mapper.Money(minErr.Minimum).String() +
				". Current total: " + mapper.Money(minErr.Total).String()).
			WithExtension("minimumOrder", mapper.Money(minErr.Minimum)).
			WithExtension("currentTotal", mapper.Money(minErr.Total)).
			WithExtension("shortfall", mapper.Money(minErr.Shortfall())), true
	case errors.Is(err, application.ErrInvalidRequest):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrRestaurantClosed):
		return problemRestaurantClosed.WithDetail("Restaurant is currently closed"), true
	case errors.Is(err, application.ErrItemsNotFound):
		return problemItemsNotFound.WithDetail("One or more menu items not found"), true
	case errors.Is(err, application.ErrCrossRestaurantOrder):
		return problemCrossRestaurantOrder.WithDetail("All items must be from the same restaurant"), true
	case errors.Is(err, application.ErrItemUnavailable):
		return problemItemUnavailable.WithDetail("One or more items are not available"), true
	case errors.Is(err, application.ErrForbidden):
		return sharederrors.ErrForbidden.WithDetail("Access denied"), true
	case errors.Is(err, application.ErrIdempotencyConflict):
		return problemIdempotencyConflict.WithDetail("Idempotency-Key was already used for a different order request"), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
