package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore persists orders and their items in PostgreSQL using GORM.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore wires a PostgreSQL-backed order store. Caller manages DB lifecycle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Atomically runs fn inside a database transaction that is rolled back when fn fails.
func (s *OrderStore) Atomically(ctx context.Context, fn func(ctx context.Context, w ports.OrderWriter) error) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &txWriter{tx: tx})
	})
}

// FindByID loads an order header with its items in line order.
func (s *OrderStore) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ports.ErrNotFound
	}
	var record orderRecord
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByUserID returns order headers for a user, newest first.
func (s *OrderStore) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ports.ErrNotFound
	}
	result := s.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *OrderStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres order store not configured")
	}
	return nil
}

// txWriter performs the writes of one Atomically call on the open transaction.
type txWriter struct {
	tx *gorm.DB
}

func (w *txWriter) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	record.ID = uuid.NewString()
	if err := w.tx.WithContext(ctx).Omit("Items").Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (w *txWriter) CreateItems(ctx context.Context, orderID string, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return []domain.OrderItem{}, nil
	}
	records := make([]orderItemRecord, 0, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		records = append(records, orderItemRecord{
			ID:                  uuid.NewString(),
			OrderID:             orderID,
			LineNo:              i + 1,
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			Price:               item.UnitPrice,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	if err := w.tx.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	rows := make([]domain.OrderItem, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.toDomain())
	}
	return rows, nil
}

// ClaimIdempotencyKey writes the key on the open transaction, so it commits or rolls back with the order.
func (w *txWriter) ClaimIdempotencyKey(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	return saveKey(ctx, w.tx, record)
}
