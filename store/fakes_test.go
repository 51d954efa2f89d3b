package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/atelierline/storefront-api/models"
)

// fakeProductBackend stands in for the document store in catalog tests.
type fakeProductBackend struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
	failWith error
	calls    []string
}

func (f *fakeProductBackend) All(ctx context.Context) ([]models.Product, error) {
	f.record("All")
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductBackend) Create(ctx context.Context, p models.Product) (models.Product, error) {
	f.record("Create")
	if f.failWith != nil {
		return models.Product{}, f.failWith
	}
	f.mu.Lock()
	f.nextID++
	p.ID = fmt.Sprintf("prod-%d", f.nextID)
	f.products = append(f.products, p)
	f.mu.Unlock()
	return p, nil
}

func (f *fakeProductBackend) Update(ctx context.Context, p models.Product) error {
	f.record("Update")
	return f.failWith
}

func (f *fakeProductBackend) Delete(ctx context.Context, id string) error {
	f.record("Delete")
	return f.failWith
}

func (f *fakeProductBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

// fakeOrderBackend stands in for the document store in orders and checkout
// tests.
type fakeOrderBackend struct {
	mu       sync.Mutex
	orders   []models.Order
	nextID   int
	failWith error
	statuses map[string]models.OrderStatus
}

func (f *fakeOrderBackend) All(ctx context.Context) ([]models.Order, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderBackend) Create(ctx context.Context, o models.Order) (models.Order, error) {
	if f.failWith != nil {
		return models.Order{}, f.failWith
	}
	f.mu.Lock()
	f.nextID++
	o.ID = fmt.Sprintf("a1b2c3d4e5-%d", f.nextID)
	f.orders = append(f.orders, o)
	f.mu.Unlock()
	return o, nil
}

func (f *fakeOrderBackend) UpdateStatus(ctx context.Context, id string, st models.OrderStatus) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	if f.statuses == nil {
		f.statuses = map[string]models.OrderStatus{}
	}
	f.statuses[id] = st
	f.mu.Unlock()
	return nil
}

func (f *fakeOrderBackend) Cancel(ctx context.Context, id string) error {
	return f.UpdateStatus(ctx, id, models.OrderStatusCancelled)
}

func (f *fakeOrderBackend) created() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out
}

// fakeIdentity scripts the identity provider for auth-store tests.
type fakeIdentity struct {
	signInUser  AuthUser
	signInErr   error
	signUpUser  AuthUser
	signUpErr   error
	googleUser  AuthUser
	googleErr   error
	signOutErr  error
	sessionUser *AuthUser

	signedOutUID string
}

func (f *fakeIdentity) SignUp(ctx context.Context, in SignUpInput) (AuthUser, error) {
	return f.signUpUser, f.signUpErr
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (AuthUser, error) {
	return f.signInUser, f.signInErr
}

func (f *fakeIdentity) SignInWithGoogle(ctx context.Context, idToken string) (AuthUser, error) {
	return f.googleUser, f.googleErr
}

func (f *fakeIdentity) SignOut(ctx context.Context, uid string) error {
	f.signedOutUID = uid
	return f.signOutErr
}

func (f *fakeIdentity) SessionChanges(ctx context.Context, idToken string) <-chan *AuthUser {
	ch := make(chan *AuthUser, 1)
	ch <- f.sessionUser
	return ch
}
