package store

import (
	"context"
	"sync"

	"github.com/atelierline/storefront-api/models"
)

// OrdersStore mirrors the orders collection in memory. Status patches are
// applied locally only after the backend acknowledges the write; the
// deletion path forces the order into cancelled on the backend and drops it
// from the in-memory list.
type OrdersStore struct {
	backend OrderBackend

	mu      sync.Mutex
	items   []models.Order
	loading bool
	lastErr string
}

func NewOrdersStore(backend OrderBackend) *OrdersStore {
	return &OrdersStore{backend: backend}
}

// FetchAll replaces the in-memory list with the backend's full list.
func (s *OrdersStore) FetchAll(ctx context.Context) error {
	s.begin()
	orders, err := s.backend.All(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.items = orders
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Create submits the order to the backend and prepends the result, keeping
// newest-first display order.
func (s *OrdersStore) Create(ctx context.Context, o models.Order) (models.Order, error) {
	s.begin()
	created, err := s.backend.Create(ctx, o)
	if err != nil {
		s.fail(err)
		return models.Order{}, err
	}

	s.mu.Lock()
	s.items = append([]models.Order{created}, s.items...)
	s.loading = false
	s.mu.Unlock()
	return created, nil
}

// UpdateStatus performs a partial backend update of the status and
// updated-timestamp fields, then patches the matching in-memory order. The
// local patch only applies on the fulfilled outcome, never before.
func (s *OrdersStore) UpdateStatus(ctx context.Context, id string, st models.OrderStatus) error {
	if err := s.backend.UpdateStatus(ctx, id, st); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = st
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete models deletion as forced cancellation: the backend order is set to
// cancelled and the entry leaves the in-memory list.
func (s *OrdersStore) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.backend.Cancel(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, o := range s.items {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.items = kept
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Orders returns a copy of the in-memory list.
func (s *OrdersStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.items))
	copy(out, s.items)
	return out
}

func (s *OrdersStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *OrdersStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *OrdersStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *OrdersStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *OrdersStore) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
}
