package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var (
	_ ports.RestaurantDirectory = (*RestaurantDirectory)(nil)
	_ ports.MenuCatalog         = (*MenuCatalog)(nil)
)

// RestaurantDirectory reads restaurants from PostgreSQL. Caller manages DB lifecycle.
type RestaurantDirectory struct {
	db *gorm.DB
}

func NewRestaurantDirectory(db *gorm.DB) *RestaurantDirectory {
	return &RestaurantDirectory{db: db}
}

// FindByID loads a restaurant. Malformed identifiers are reported as not found.
func (d *RestaurantDirectory) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("postgres restaurant directory not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ports.ErrNotFound
	}
	var record restaurantRecord
	if err := d.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// MenuCatalog reads menu items from PostgreSQL.
type MenuCatalog struct {
	db *gorm.DB
}

func NewMenuCatalog(db *gorm.DB) *MenuCatalog {
	return &MenuCatalog{db: db}
}

// FindByIDs loads all matching items in one query. Unknown or malformed ids are omitted.
func (c *MenuCatalog) FindByIDs(ctx context.Context, ids []string) ([]domain.MenuItem, error) {
	if c == nil || c.db == nil {
		return nil, errors.New("postgres menu catalog not configured")
	}
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []domain.MenuItem{}, nil
	}
	var records []menuItemRecord
	if err := c.db.WithContext(ctx).Where("id IN ?", valid).Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDomain())
	}
	return items, nil
}
