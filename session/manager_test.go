package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/store"
)

type nilIdentity struct{}

func (nilIdentity) SignUp(ctx context.Context, in store.SignUpInput) (store.AuthUser, error) {
	return store.AuthUser{}, nil
}

func (nilIdentity) SignIn(ctx context.Context, email, password string) (store.AuthUser, error) {
	return store.AuthUser{}, nil
}

func (nilIdentity) SignInWithGoogle(ctx context.Context, idToken string) (store.AuthUser, error) {
	return store.AuthUser{}, nil
}

func (nilIdentity) SignOut(ctx context.Context, uid string) error { return nil }

func (nilIdentity) SessionChanges(ctx context.Context, idToken string) <-chan *store.AuthUser {
	ch := make(chan *store.AuthUser, 1)
	ch <- nil
	return ch
}

type nilOrderBackend struct{}

func (nilOrderBackend) All(ctx context.Context) ([]models.Order, error) { return nil, nil }
func (nilOrderBackend) Create(ctx context.Context, o models.Order) (models.Order, error) {
	return o, nil
}
func (nilOrderBackend) UpdateStatus(ctx context.Context, id string, st models.OrderStatus) error {
	return nil
}
func (nilOrderBackend) Cancel(ctx context.Context, id string) error { return nil }

func newManager(ttl time.Duration) *Manager {
	orders := store.NewOrdersStore(nilOrderBackend{})
	return NewManager(nilIdentity{}, orders, 0, ttl)
}

func TestCreateWiresSessionState(t *testing.T) {
	mgr := newManager(time.Hour)

	sess := mgr.Create()
	require.NotEmpty(t, sess.ID)
	require.NotNil(t, sess.Cart)
	require.NotNil(t, sess.Auth)
	require.NotNil(t, sess.Checkout)
	assert.Same(t, sess.Cart, sess.Checkout.Cart)

	got, ok := mgr.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestSessionsAreIsolated(t *testing.T) {
	mgr := newManager(time.Hour)
	a := mgr.Create()
	b := mgr.Create()

	a.Cart.AddLine(models.Product{ID: "p1", Price: "$50"}, "M")

	assert.Equal(t, 1, a.Cart.Len())
	assert.Equal(t, 0, b.Cart.Len())
}

func TestGetEvictsExpiredSession(t *testing.T) {
	mgr := newManager(10 * time.Millisecond)
	sess := mgr.Create()

	time.Sleep(30 * time.Millisecond)

	_, ok := mgr.Get(sess.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, mgr.Len())
}

func TestGetUnknownID(t *testing.T) {
	mgr := newManager(time.Hour)
	_, ok := mgr.Get("nope")
	assert.False(t, ok)
}

func TestJanitorEvictsExpired(t *testing.T) {
	mgr := newManager(10 * time.Millisecond)
	mgr.Create()
	mgr.Create()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mgr.Janitor(ctx, 20*time.Millisecond)

	assert.Eventually(t, func() bool { return mgr.Len() == 0 }, time.Second, 10*time.Millisecond)
}
