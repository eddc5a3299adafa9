package domain

import "github.com/shopspring/decimal"

// Restaurant is the directory view the order builder reads.
type Restaurant struct {
	ID           string
	Name         string
	IsOpen       bool
	MinimumOrder decimal.Decimal
	DeliveryFee  decimal.Decimal
}

// MenuItem is the catalog view the order builder reads.
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Price        decimal.Decimal
	IsAvailable  bool
}
