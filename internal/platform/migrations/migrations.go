package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the ordering schema. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	err := db.AutoMigrate(
		&restaurantRecord{},
		&menuItemRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&idempotencyRecord{},
	)
	if err != nil {
		return err
	}
	// The has-many constraint lives on order_items; create it if AutoMigrate left it out.
	migrator := db.Migrator()
	if !migrator.HasConstraint(&orderRecord{}, "Items") {
		return migrator.CreateConstraint(&orderRecord{}, "Items")
	}
	return nil
}

// Restaurant schema mirrors the ordering Postgres adapter.
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

// Order schema mirrors the ordering Postgres adapter.
type orderRecord struct {
	ID                  string            `gorm:"primaryKey;column:id;type:uuid"`
	UserID              string            `gorm:"column:user_id;size:64;not null;index:idx_orders_user_created,priority:1"`
	RestaurantID        string            `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Status              string            `gorm:"column:status;type:varchar(32);not null;index"`
	TotalAmount         decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	DeliveryFee         decimal.Decimal   `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	DeliveryAddress     string            `gorm:"column:delivery_address;not null"`
	SpecialInstructions string            `gorm:"column:special_instructions"`
	CreatedAt           time.Time         `gorm:"column:created_at;index:idx_orders_user_created,priority:2,sort:desc"`
	UpdatedAt           time.Time         `gorm:"column:updated_at"`
	Items               []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
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

// Idempotency schema mirrors the ordering idempotency store.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	UserID      string    `gorm:"column:user_id;size:64;not null"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     string    `gorm:"column:order_id;type:uuid;not null"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
