package memory

import (
	"context"
	"sync"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var (
	_ ports.RestaurantDirectory = (*RestaurantDirectory)(nil)
	_ ports.MenuCatalog         = (*MenuCatalog)(nil)
)

// RestaurantDirectory is an in-memory restaurant lookup.
type RestaurantDirectory struct {
	mu          sync.RWMutex
	restaurants map[string]domain.Restaurant
}

func NewRestaurantDirectory(restaurants ...domain.Restaurant) *RestaurantDirectory {
	d := &RestaurantDirectory{restaurants: map[string]domain.Restaurant{}}
	for _, r := range restaurants {
		d.Put(r)
	}
	return d
}

// Put inserts or replaces a restaurant.
func (d *RestaurantDirectory) Put(restaurant domain.Restaurant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restaurants[restaurant.ID] = restaurant
}

func (d *RestaurantDirectory) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	restaurant, ok := d.restaurants[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &restaurant, nil
}

// MenuCatalog is an in-memory menu item lookup.
type MenuCatalog struct {
	mu    sync.RWMutex
	items map[string]domain.MenuItem
}

func NewMenuCatalog(items ...domain.MenuItem) *MenuCatalog {
	c := &MenuCatalog{items: map[string]domain.MenuItem{}}
	for _, item := range items {
		c.Put(item)
	}
	return c
}

// Put inserts or replaces a menu item.
func (c *MenuCatalog) Put(item domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = item
}

func (c *MenuCatalog) FindByIDs(_ context.Context, ids []string) ([]domain.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	result := make([]domain.MenuItem, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := c.items[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}
