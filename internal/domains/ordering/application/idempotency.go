package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

type normalizedOrderRequest struct {
	RestaurantID        string           `json:"restaurantId"`
	Items               []normalizedLine `json:"items"`
	DeliveryAddress     string           `json:"deliveryAddress"`
	SpecialInstructions string           `json:"specialInstructions,omitempty"`
}

type normalizedLine struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// FingerprintOrderRequest builds a deterministic hash of the order request payload.
// Line order is preserved since it is part of what the client asked for.
func FingerprintOrderRequest(req domain.OrderRequest) (string, error) {
	normalized := normalizedOrderRequest{
		RestaurantID:        strings.TrimSpace(req.RestaurantID),
		Items:               make([]normalizedLine, 0, len(req.Items)),
		DeliveryAddress:     strings.TrimSpace(req.DeliveryAddress),
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
	}
	for _, line := range req.Items {
		normalized.Items = append(normalized.Items, normalizedLine{
			MenuItemID:          strings.TrimSpace(line.MenuItemID),
			Quantity:            line.Quantity,
			SpecialInstructions: strings.TrimSpace(line.SpecialInstructions),
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
