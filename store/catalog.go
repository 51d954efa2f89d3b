package store

import (
	"context"
	"sync"

	"github.com/atelierline/storefront-api/models"
)

// CatalogStore mirrors the products collection in memory. Mutations go to
// the backend first; a failure leaves the prior in-memory state untouched
// (nothing is applied optimistically). The store tracks one loading flag and
// one last-error message, matching the UI's per-store status line.
type CatalogStore struct {
	backend ProductBackend

	mu      sync.Mutex
	items   []models.Product
	loading bool
	lastErr string
}

func NewCatalogStore(backend ProductBackend) *CatalogStore {
	return &CatalogStore{backend: backend}
}

// FetchAll replaces the in-memory list with the backend's full list.
// Last writer wins; there is no incremental merge.
func (s *CatalogStore) FetchAll(ctx context.Context) error {
	s.begin()
	products, err := s.backend.All(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.items = products
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Create asks the backend to insert the product (it assigns the ID) and
// appends the result to the list.
func (s *CatalogStore) Create(ctx context.Context, p models.Product) (models.Product, error) {
	s.begin()
	created, err := s.backend.Create(ctx, p)
	if err != nil {
		s.fail(err)
		return models.Product{}, err
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.loading = false
	s.mu.Unlock()
	return created, nil
}

// Update writes the product to the backend, then replaces the in-memory
// entry with the matching ID. With no match the state is simply unchanged.
func (s *CatalogStore) Update(ctx context.Context, p models.Product) error {
	s.begin()
	if err := s.backend.Update(ctx, p); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = p
			break
		}
	}
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Remove deletes the product from the backend and filters it from the list.
func (s *CatalogStore) Remove(ctx context.Context, id string) error {
	s.begin()
	if err := s.backend.Delete(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Products returns a copy of the in-memory list.
func (s *CatalogStore) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the in-memory product with the given ID, if present.
func (s *CatalogStore) Find(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *CatalogStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CatalogStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *CatalogStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *CatalogStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *CatalogStore) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
}
