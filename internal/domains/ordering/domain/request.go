package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingRestaurantID = errors.New("restaurant id is required")
	ErrEmptyItems          = errors.New("order must contain at least one item")
	ErrMissingMenuItemID   = errors.New("menu item id is required")
	ErrMissingAddress      = errors.New("delivery address is required")
	ErrMissingUserID       = errors.New("user id is required")
)

// OrderLine is one requested menu item.
type OrderLine struct {
	MenuItemID          string
	Quantity            int
	SpecialInstructions string
}

// OrderRequest is the client's proposed order before validation and pricing.
type OrderRequest struct {
	RestaurantID        string
	Items               []OrderLine
	DeliveryAddress     string
	SpecialInstructions string
}

// Normalize returns a copy with identifiers and free text trimmed.
func (r OrderRequest) Normalize() OrderRequest {
	out := OrderRequest{
		RestaurantID:        strings.TrimSpace(r.RestaurantID),
		DeliveryAddress:     strings.TrimSpace(r.DeliveryAddress),
		SpecialInstructions: strings.TrimSpace(r.SpecialInstructions),
	}
	if r.Items != nil {
		out.Items = make([]OrderLine, 0, len(r.Items))
	}
	for _, line := range r.Items {
		out.Items = append(out.Items, OrderLine{
			MenuItemID:          strings.TrimSpace(line.MenuItemID),
			Quantity:            line.Quantity,
			SpecialInstructions: strings.TrimSpace(line.SpecialInstructions),
		})
	}
	return out
}

// Validate checks the request shape. It does not consult any catalog.
func (r OrderRequest) Validate() error {
	if strings.TrimSpace(r.RestaurantID) == "" {
		return ErrMissingRestaurantID
	}
	if len(r.Items) == 0 {
		return ErrEmptyItems
	}
	for _, line := range r.Items {
		if strings.TrimSpace(line.MenuItemID) == "" {
			return ErrMissingMenuItemID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if strings.TrimSpace(r.DeliveryAddress) == "" {
		return ErrMissingAddress
	}
	return nil
}

// DistinctMenuItemIDs returns each referenced menu item id once, in first-seen order.
func (r OrderRequest) DistinctMenuItemIDs() []string {
	seen := make(map[string]struct{}, len(r.Items))
	ids := make([]string, 0, len(r.Items))
	for _, line := range r.Items {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}
	return ids
}
