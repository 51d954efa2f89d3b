package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/atelierline/storefront-api/models"
)

// ErrEmptyCart is returned when checkout is attempted with no lines; no
// backend write is issued in that case.
var ErrEmptyCart = errors.New("cart is empty")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactDetails are the customer fields collected at checkout, either from
// the guest form or from the authenticated user's stored profile.
type ContactDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// FieldErrors maps a contact field name to its validation error text.
type FieldErrors map[string]string

// ValidationError blocks submission before any backend call.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid contact details: " + strings.Join(parts, "; ")
}

// ValidateContact applies the guest-form rules: all fields required, email
// must match a simple pattern, phone needs at least 10 digits after
// stripping non-digit characters.
func ValidateContact(d ContactDetails) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(d.Email) {
		errs["email"] = "Please enter a valid email"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if len(digitsOnly(d.Phone)) < 10 {
		errs["phone"] = "Please enter a valid phone number"
	}
	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "Address is required"
	}

	return errs
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Confirmation is the post-checkout acknowledgment shown to the customer.
// The short reference is derived from the backend-assigned order ID.
type Confirmation struct {
	Order     models.Order `json:"order"`
	Reference string       `json:"reference"`
}

// Checkout orchestrates reading the cart, collecting contact details,
// writing the order record and clearing the cart on success. There is no
// idempotency key: a double-submit before the first request resolves can
// create two orders for one cart.
type Checkout struct {
	Cart   *CartStore
	Orders *OrdersStore

	// DismissAfter is how long a confirmation stays visible before it
	// auto-dismisses (and the cart panel closes).
	DismissAfter time.Duration

	mu           sync.Mutex
	confirmation *Confirmation
	timer        *time.Timer
}

func NewCheckout(cart *CartStore, orders *OrdersStore, dismissAfter time.Duration) *Checkout {
	return &Checkout{Cart: cart, Orders: orders, DismissAfter: dismissAfter}
}

// SubmitGuest validates the entered contact details and places the order as
// a guest. Validation failures abort before any backend call and leave the
// cart untouched.
func (c *Checkout) SubmitGuest(ctx context.Context, d ContactDetails) (Confirmation, error) {
	if errs := ValidateContact(d); len(errs) > 0 {
		return Confirmation{}, &ValidationError{Fields: errs}
	}
	return c.submit(ctx, d, "", true)
}

// SubmitAuthenticated places the order for a signed-in user, building the
// contact details from the stored profile with "N/A" fallbacks.
func (c *Checkout) SubmitAuthenticated(ctx context.Context, user AuthUser) (Confirmation, error) {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = "N/A"
	}
	phone := user.PhoneNumber
	if phone == "" {
		phone = "N/A"
	}

	d := ContactDetails{
		Name:  name,
		Email: user.Email,
		Phone: phone,
	}
	return c.submit(ctx, d, user.ID, false)
}

// submit runs steps 3-6 of the flow: snapshot, backend write, clear cart,
// confirmation. A failed write leaves the cart intact so the caller can
// retry with the same contact data.
func (c *Checkout) submit(ctx context.Context, d ContactDetails, userID string, isGuest bool) (Confirmation, error) {
	lines := c.Cart.Lines()
	if len(lines) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		image := ""
		if len(line.Images) > 0 {
			image = line.Images[0]
		}
		items = append(items, models.OrderItem{
			ProductID:    line.Product.ID,
			Title:        line.Title,
			Price:        line.Price,
			Quantity:     line.Quantity,
			SelectedSize: line.SelectedSize,
			Image:        image,
			Category:     line.Category,
		})
	}

	order := models.Order{
		UserID:          userID,
		IsGuest:         isGuest,
		CustomerName:    d.Name,
		CustomerEmail:   d.Email,
		CustomerPhone:   d.Phone,
		CustomerAddress: d.Address,
		Items:           items,
		TotalAmount:     fmt.Sprintf("$%.2f", c.Cart.Total()),
		Status:          models.OrderStatusPending,
	}

	created, err := c.Orders.Create(ctx, order)
	if err != nil {
		return Confirmation{}, err
	}

	c.Cart.Clear()

	conf := Confirmation{Order: created, Reference: orderReference(created.ID)}
	c.setConfirmation(conf)
	return conf, nil
}

func orderReference(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func (c *Checkout) setConfirmation(conf Confirmation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.confirmation = &conf
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.DismissAfter > 0 {
		c.timer = time.AfterFunc(c.DismissAfter, func() {
			c.Dismiss()
			c.Cart.Close()
		})
	}
}

// Confirmation returns the pending confirmation, or nil after dismissal.
func (c *Checkout) Confirmation() *Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmation == nil {
		return nil
	}
	conf := *c.confirmation
	return &conf
}

// Dismiss clears the confirmation.
func (c *Checkout) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmation = nil
}
