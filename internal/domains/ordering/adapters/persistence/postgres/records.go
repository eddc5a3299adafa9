package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

// restaurantRecord maps the restaurants table. Only the columns the order builder reads are
// converted to the domain; the rest belong to the browsing side of the product.
type restaurantRecord struct {
	ID           string          `gorm:"primaryKey;column:id;type:uuid"`
	Name         string          `gorm:"column:name;not null"`
	Image        string          `gorm:"column:image"`
	Rating       decimal.Decimal `gorm:"column:rating;type:numeric(2,1);default:0"`
	DeliveryTime string          `gorm:"column:delivery_time"`
	CuisineTypes pq.StringArray  `gorm:"column:cuisine_types;type:text[]"`
	MinimumOrder decimal.Decimal `gorm:"column:minimum_order;type:numeric(10,2);not null;default:0"`
	DeliveryFee  decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	IsOpen       bool            `gorm:"column:is_open;not null;default:true;index"`
	Address      string          `gorm:"column:address"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (restaurantRecord) TableName() string { return "restaurants" }

func (r restaurantRecord) toDomain() *domain.Restaurant {
	return &domain.Restaurant{
		ID:           r.ID,
		Name:         r.Name,
		IsOpen:       r.IsOpen,
		MinimumOrder: r.MinimumOrder,
		DeliveryFee:  r.DeliveryFee,
	}
}

type menuItemRecord struct {
	ID              string          `gorm:"primaryKey;column:id;type:uuid"`
	RestaurantID    string          `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name            string          `gorm:"column:name;not null"`
	Description     string          `gorm:"column:description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;check:chk_menu_items_price,price >= 0"`
	Image           string          `gorm:"column:image"`
	Category        string          `gorm:"column:category"`
	IsVegetarian    bool            `gorm:"column:is_vegetarian;not null;default:false"`
	IsAvailable     bool            `gorm:"column:is_available;not null;default:true"`
	PreparationTime int             `gorm:"column:preparation_time"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (menuItemRecord) TableName() string { return "menu_items" }

func (r menuItemRecord) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:           r.ID,
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Price:        r.Price,
		IsAvailable:  r.IsAvailable,
	}
}

type orderRecord struct {
	ID                  string            `gorm:"primaryKey;column:id;type:uuid"`
	UserID              string            `gorm:"column:user_id;size:64;not null;index:idx_orders_user_created,priority:1"`
	RestaurantID        string            `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Status              string            `gorm:"column:status;type:varchar(32);not null;index"`
	TotalAmount         decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	DeliveryFee         decimal.Decimal   `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	DeliveryAddress     string            `gorm:"column:delivery_address;not null"`
	SpecialInstructions string            `gorm:"column:special_instructions"`
	Items               []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time         `gorm:"column:created_at;index:idx_orders_user_created,priority:2,sort:desc"`
	UpdatedAt           time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID                  string          `gorm:"primaryKey;column:id;type:uuid"`
	OrderID             string          `gorm:"column:order_id;type:uuid;not null;index"`
	LineNo              int             `gorm:"column:line_no;not null"`
	MenuItemID          string          `gorm:"column:menu_item_id;type:uuid;not null"`
	Quantity            int             `gorm:"column:quantity;not null;check:chk_order_items_quantity,quantity > 0"`
	Price               decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	SpecialInstructions string          `gorm:"column:special_instructions"`
	CreatedAt           time.Time       `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:                  order.ID,
		UserID:              order.UserID,
		RestaurantID:        order.RestaurantID,
		Status:              string(order.Status),
		TotalAmount:         order.TotalAmount,
		DeliveryFee:         order.DeliveryFee,
		DeliveryAddress:     order.DeliveryAddress,
		SpecialInstructions: order.SpecialInstructions,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:                  r.ID,
		UserID:              r.UserID,
		RestaurantID:        r.RestaurantID,
		Status:              domain.Status(r.Status),
		TotalAmount:         r.TotalAmount,
		DeliveryFee:         r.DeliveryFee,
		DeliveryAddress:     r.DeliveryAddress,
		SpecialInstructions: r.SpecialInstructions,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.Items != nil {
		order.Items = make([]domain.OrderItem, 0, len(r.Items))
		for _, item := range r.Items {
			order.Items = append(order.Items, item.toDomain())
		}
	}
	return order
}

func (r orderItemRecord) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ID:                  r.ID,
		OrderID:             r.OrderID,
		MenuItemID:          r.MenuItemID,
		Quantity:            r.Quantity,
		UnitPrice:           r.Price,
		SpecialInstructions: r.SpecialInstructions,
	}
}
