package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore is an in-memory order persistence adapter. Writes made inside Atomically
// are staged and only become visible when the callback succeeds.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*storedOrder
	keys   *IdempotencyStore
	seq    int64
	now    func() time.Time
}

type storedOrder struct {
	order *domain.Order
	seq   int64
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[string]*storedOrder{}, keys: NewIdempotencyStore(), now: time.Now}
}

// WithIdempotencyStore makes keys claimed inside Atomically land in keys.
func (s *OrderStore) WithIdempotencyStore(keys *IdempotencyStore) {
	if keys != nil {
		s.keys = keys
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *OrderStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *OrderStore) Atomically(ctx context.Context, fn func(ctx context.Context, w ports.OrderWriter) error) error {
	if fn == nil {
		return errors.New("unit of work is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &stagedWriter{store: s, orders: map[string]*domain.Order{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, record := range tx.keys {
		if _, err := s.keys.Save(ctx, record); err != nil {
			return err
		}
	}
	for _, id := range tx.created {
		s.seq++
		s.orders[id] = &storedOrder{order: tx.orders[id], seq: s.seq}
	}
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return stored.order.Clone(), nil
}

func (s *OrderStore) FindByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	s.mu.RLock()
	matches := make([]*storedOrder, 0)
	for _, stored := range s.orders {
		if stored.order.UserID == userID {
			matches = append(matches, stored)
		}
	}
	s.mu.RUnlock()
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.After(b.order.CreatedAt)
		}
		return a.seq > b.seq
	})
	list := make([]*domain.Order, 0, len(matches))
	for _, stored := range matches {
		header := stored.order.Clone()
		header.Items = nil
		list = append(list, header)
	}
	return list, nil
}

func (s *OrderStore) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := stored.order.UpdateStatus(status); err != nil {
		return nil, err
	}
	stored.order.UpdatedAt = s.now()
	return stored.order.Clone(), nil
}

// stagedWriter buffers writes of a single Atomically call. The store lock is held by the caller.
type stagedWriter struct {
	store   *OrderStore
	orders  map[string]*domain.Order
	created []string
	keys    []ports.IdempotencyRecord
}

func (w *stagedWriter) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	clone.ID = uuid.NewString()
	clone.Items = nil
	now := w.store.now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	w.orders[clone.ID] = clone
	w.created = append(w.created, clone.ID)
	return clone.Clone(), nil
}

func (w *stagedWriter) CreateItems(_ context.Context, orderID string, items []domain.OrderItem) ([]domain.OrderItem, error) {
	order, ok := w.orders[orderID]
	if !ok {
		if _, committed := w.store.orders[orderID]; !committed {
			return nil, ports.ErrNotFound
		}
		return nil, errors.New("order items can only be added in the unit of work that created the order")
	}
	rows := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.ID = uuid.NewString()
		item.OrderID = orderID
		rows = append(rows, item)
	}
	order.Items = append(order.Items, rows...)
	return append([]domain.OrderItem(nil), rows...), nil
}

func (w *stagedWriter) ClaimIdempotencyKey(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if _, ok := w.orders[record.OrderID]; !ok {
		return nil, ports.ErrNotFound
	}
	for _, staged := range w.keys {
		if staged.Key == record.Key {
			held := staged
			return &held, ports.ErrIdempotencyConflict
		}
	}
	held, err := w.store.keys.Get(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	if held != nil {
		return held, ports.ErrIdempotencyConflict
	}
	w.keys = append(w.keys, record)
	claimed := record
	return &claimed, nil
}
