package mapper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

// Money renders a decimal amount as a JSON number with at least two fraction digits.
// Sub-cent digits are kept, never rounded away.
type Money decimal.Decimal

func (m Money) String() string {
	d := decimal.Decimal(m)
	exact := d.String()
	if dot := strings.IndexByte(exact, '.'); dot >= 0 && len(exact)-dot-1 > 2 {
		return exact
	}
	return d.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	RestaurantID        string             `json:"restaurantId"`
	Items               []OrderLineRequest `json:"items"`
	DeliveryAddress     string             `json:"deliveryAddress"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

type OrderLineRequest struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// UpdateStatusRequest is the body of PATCH /api/orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Order is the transport shape of an order.
type Order struct {
	ID                  string      `json:"id"`
	UserID              string      `json:"userId"`
	RestaurantID        string      `json:"restaurantId"`
	Status              string      `json:"status"`
	TotalAmount         Money       `json:"totalAmount"`
	DeliveryFee         Money       `json:"deliveryFee"`
	GrandTotal          Money       `json:"grandTotal"`
	DeliveryAddress     string      `json:"deliveryAddress"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	Items               []OrderItem `json:"items,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID                  string `json:"id"`
	OrderID             string `json:"orderId"`
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	Price               Money  `json:"price"`
	LineTotal           Money  `json:"lineTotal"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// ToDomainOrderRequest converts the transport request into the domain request.
func ToDomainOrderRequest(req CreateOrderRequest) domain.OrderRequest {
	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.OrderLine{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return domain.OrderRequest{
		RestaurantID:        req.RestaurantID,
		Items:               lines,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:                  order.ID,
		UserID:              order.UserID,
		RestaurantID:        order.RestaurantID,
		Status:              string(order.Status),
		TotalAmount:         Money(order.TotalAmount),
		DeliveryFee:         Money(order.DeliveryFee),
		GrandTotal:          Money(order.GrandTotal()),
		DeliveryAddress:     order.DeliveryAddress,
		SpecialInstructions: order.SpecialInstructions,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
	if len(order.Items) > 0 {
		out.Items = make([]OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			out.Items = append(out.Items, OrderItem{
				ID:                  item.ID,
				OrderID:             item.OrderID,
				MenuItemID:          item.MenuItemID,
				Quantity:            item.Quantity,
				Price:               Money(item.UnitPrice),
				LineTotal:           Money(item.LineTotal()),
				SpecialInstructions: item.SpecialInstructions,
			})
		}
	}
	return out
}

// FromDomainOrders converts a list, never returning nil.
func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
