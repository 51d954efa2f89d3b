package store

import (
	"context"

	"github.com/atelierline/storefront-api/models"
)

// ProductBackend is the document-store boundary the catalog store mirrors.
type ProductBackend interface {
	All(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderBackend is the document-store boundary the orders store mirrors.
type OrderBackend interface {
	All(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, o models.Order) (models.Order, error)
	UpdateStatus(ctx context.Context, id string, st models.OrderStatus) error
	Cancel(ctx context.Context, id string) error
}

// AuthUser is the signed-in user snapshot mirrored from the identity
// provider and the profile document.
type AuthUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	IsAdmin     bool   `json:"-"`
}

// SignUpInput carries the fields collected by the sign-up form.
type SignUpInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Identity is the identity-provider boundary. Session validity and token
// lifecycle live entirely behind it; the auth store only mirrors snapshots.
type Identity interface {
	SignUp(ctx context.Context, in SignUpInput) (AuthUser, error)
	SignIn(ctx context.Context, email, password string) (AuthUser, error)
	SignInWithGoogle(ctx context.Context, idToken string) (AuthUser, error)
	SignOut(ctx context.Context, uid string) error
	// SessionChanges delivers the current user handle (or nil when signed
	// out, or when the profile document is missing) on every auth
	// transition, starting with the current state.
	SessionChanges(ctx context.Context, idToken string) <-chan *AuthUser
}
