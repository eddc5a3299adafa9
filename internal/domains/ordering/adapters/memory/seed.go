package memory

import (
	"github.com/shopspring/decimal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

// SeedDemoCatalog loads a small fixed catalog for running the API without a database.
func SeedDemoCatalog(restaurants *RestaurantDirectory, menu *MenuCatalog) {
	const (
		spiceRoute = "7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d01"
		pastaPlace = "7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d02"
		lateNight  = "7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d03"
	)
	restaurants.Put(domain.Restaurant{ID: spiceRoute, Name: "Spice Route", IsOpen: true, MinimumOrder: decimal.RequireFromString("15.00"), DeliveryFee: decimal.RequireFromString("2.99")})
	restaurants.Put(domain.Restaurant{ID: pastaPlace, Name: "Pasta Place", IsOpen: true, MinimumOrder: decimal.RequireFromString("10.00"), DeliveryFee: decimal.RequireFromString("1.99")})
	restaurants.Put(domain.Restaurant{ID: lateNight, Name: "Late Night Grill", IsOpen: false, MinimumOrder: decimal.Zero, DeliveryFee: decimal.RequireFromString("3.50")})

	for _, item := range []domain.MenuItem{
		{ID: "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a01", RestaurantID: spiceRoute, Name: "Paneer Tikka", Price: decimal.RequireFromString("10.00"), IsAvailable: true},
		{ID: "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a02", RestaurantID: spiceRoute, Name: "Garlic Naan", Price: decimal.RequireFromString("3.35"), IsAvailable: true},
		{ID: "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a03", RestaurantID: spiceRoute, Name: "Mango Lassi", Price: decimal.RequireFromString("4.50"), IsAvailable: false},
		{ID: "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a04", RestaurantID: pastaPlace, Name: "Carbonara", Price: decimal.RequireFromString("12.50"), IsAvailable: true},
		{ID: "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a05", RestaurantID: pastaPlace, Name: "Tiramisu", Price: decimal.RequireFromString("6.00"), IsAvailable: true},
		{ID: "5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a06", RestaurantID: lateNight, Name: "Smash Burger", Price: decimal.RequireFromString("9.75"), IsAvailable: true},
	} {
		menu.Put(item)
	}
}
