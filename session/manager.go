package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atelierline/storefront-api/store"
)

// Session is the per-client state: a cart store, an auth store and the
// checkout flow wired over them. Catalog and orders stores are shared
// across sessions.
type Session struct {
	ID       string
	Cart     *store.CartStore
	Auth     *store.AuthStore
	Checkout *store.Checkout

	mu        sync.Mutex
	expiresAt time.Time
}

func (s *Session) touch(ttl time.Duration) {
	s.mu.Lock()
	s.expiresAt = time.Now().Add(ttl)
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

// Manager owns the live sessions and evicts the ones whose TTL lapsed.
type Manager struct {
	identity     store.Identity
	orders       *store.OrdersStore
	dismissAfter time.Duration
	ttl          time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(identity store.Identity, orders *store.OrdersStore, dismissAfter, ttl time.Duration) *Manager {
	return &Manager{
		identity:     identity,
		orders:       orders,
		dismissAfter: dismissAfter,
		ttl:          ttl,
		sessions:     make(map[string]*Session),
	}
}

// Create starts a fresh browsing session with its own cart and auth stores.
func (m *Manager) Create() *Session {
	cart := store.NewCartStore()
	sess := &Session{
		ID:       uuid.NewString(),
		Cart:     cart,
		Auth:     store.NewAuthStore(m.identity),
		Checkout: store.NewCheckout(cart, m.orders, m.dismissAfter),
	}
	sess.touch(m.ttl)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Get returns the session with the given ID and refreshes its TTL.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	if sess.expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, false
	}
	sess.touch(m.ttl)
	return sess, true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Janitor evicts expired sessions on a fixed interval until ctx is done.
// Run it in its own goroutine.
func (m *Manager) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			evicted := 0
			m.mu.Lock()
			for id, sess := range m.sessions {
				if sess.expired(now) {
					delete(m.sessions, id)
					evicted++
				}
			}
			m.mu.Unlock()
			if evicted > 0 {
				log.Printf("🧹 Evicted %d expired sessions", evicted)
			}
		}
	}
}
