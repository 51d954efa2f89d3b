package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierline/storefront-api/models"
)

func newCheckoutFixture() (*Checkout, *CartStore, *fakeOrderBackend) {
	cart := NewCartStore()
	backend := &fakeOrderBackend{}
	orders := NewOrdersStore(backend)
	return NewCheckout(cart, orders, 0), cart, backend
}

func validDetails() ContactDetails {
	return ContactDetails{
		Name:    "Ana Ruiz",
		Email:   "ana@example.com",
		Phone:   "+1 (555) 123-4567",
		Address: "12 Rue de la Paix",
	}
}

func TestSubmitGuestEmptyCartWritesNothing(t *testing.T) {
	checkout, _, backend := newCheckoutFixture()

	_, err := checkout.SubmitGuest(context.Background(), validDetails())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, backend.created())
}

func TestSubmitGuestValidationBlocksBeforeBackend(t *testing.T) {
	checkout, cart, backend := newCheckoutFixture()
	cart.AddLine(product("p1", "Boxy Tee", "$50"), "M")

	cases := []struct {
		name   string
		mutate func(*ContactDetails)
		field  string
	}{
		{"missing name", func(d *ContactDetails) { d.Name = "  " }, "name"},
		{"email without at sign", func(d *ContactDetails) { d.Email = "ana.example.com" }, "email"},
		{"email missing domain dot", func(d *ContactDetails) { d.Email = "ana@example" }, "email"},
		{"short phone", func(d *ContactDetails) { d.Phone = "555-1234" }, "phone"},
		{"missing address", func(d *ContactDetails) { d.Address = "" }, "address"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDetails()
			tc.mutate(&d)

			_, err := checkout.SubmitGuest(context.Background(), d)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	// No attempt reached the backend and the cart is untouched.
	assert.Empty(t, backend.created())
	assert.Equal(t, 1, cart.Len())
}

func TestSubmitGuestSuccessClearsCartAndConfirms(t *testing.T) {
	checkout, cart, backend := newCheckoutFixture()
	tee := product("p1", "Boxy Tee", "$50")
	tee.Images = []string{"https://cdn.example.com/tee-front.jpg", "https://cdn.example.com/tee-back.jpg"}
	cart.AddLine(tee, "M")
	cart.AddLine(tee, "M")
	cart.AddLine(product("p2", "Cap", "$30"), "")

	conf, err := checkout.SubmitGuest(context.Background(), validDetails())
	require.NoError(t, err)

	created := backend.created()
	require.Len(t, created, 1)
	order := created[0]

	assert.True(t, order.IsGuest)
	assert.Empty(t, order.UserID)
	assert.Equal(t, "Ana Ruiz", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "$130.00", order.TotalAmount)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "https://cdn.example.com/tee-front.jpg", order.Items[0].Image)
	assert.Equal(t, "", order.Items[1].Image)

	assert.Equal(t, 0, cart.Len())

	// Reference is the first eight characters of the ID, uppercased.
	assert.Equal(t, "A1B2C3D4", conf.Reference)

	pending := checkout.Confirmation()
	require.NotNil(t, pending)
	assert.Equal(t, conf.Reference, pending.Reference)

	checkout.Dismiss()
	assert.Nil(t, checkout.Confirmation())
}

func TestSubmitGuestBackendFailureLeavesCartIntact(t *testing.T) {
	checkout, cart, backend := newCheckoutFixture()
	cart.AddLine(product("p1", "Boxy Tee", "$50"), "M")
	backend.failWith = errors.New("write refused")

	_, err := checkout.SubmitGuest(context.Background(), validDetails())
	require.Error(t, err)

	assert.Equal(t, 1, cart.Len())
	assert.Nil(t, checkout.Confirmation())
}

func TestSubmitAuthenticatedUsesProfileWithFallbacks(t *testing.T) {
	checkout, cart, backend := newCheckoutFixture()
	cart.AddLine(product("p1", "Boxy Tee", "$50"), "M")

	_, err := checkout.SubmitAuthenticated(context.Background(), AuthUser{
		ID:    "uid-1",
		Email: "ana@example.com",
	})
	require.NoError(t, err)

	created := backend.created()
	require.Len(t, created, 1)
	order := created[0]

	assert.False(t, order.IsGuest)
	assert.Equal(t, "uid-1", order.UserID)
	assert.Equal(t, "N/A", order.CustomerName)
	assert.Equal(t, "N/A", order.CustomerPhone)
	assert.Equal(t, "ana@example.com", order.CustomerEmail)
}

func TestSubmitAuthenticatedSkipsGuestValidation(t *testing.T) {
	checkout, cart, backend := newCheckoutFixture()
	cart.AddLine(product("p1", "Boxy Tee", "$50"), "M")

	// A profile phone shorter than the guest rule would allow still goes
	// through unchanged.
	_, err := checkout.SubmitAuthenticated(context.Background(), AuthUser{
		ID:          "uid-1",
		Email:       "ana@example.com",
		FirstName:   "Ana",
		PhoneNumber: "555",
	})
	require.NoError(t, err)

	created := backend.created()
	require.Len(t, created, 1)
	assert.Equal(t, "Ana", created[0].CustomerName)
	assert.Equal(t, "555", created[0].CustomerPhone)
}

func TestValidateContactPhoneStripsFormatting(t *testing.T) {
	d := validDetails()
	d.Phone = "(555) 123-4567"
	assert.Empty(t, ValidateContact(d))

	d.Phone = "(555) 123-456"
	errs := ValidateContact(d)
	assert.Contains(t, errs, "phone")
}
