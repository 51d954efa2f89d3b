package cartControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/session"
	"github.com/atelierline/storefront-api/store"
)

type stubProductBackend struct {
	products []models.Product
}

func (s *stubProductBackend) All(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubProductBackend) Create(ctx context.Context, p models.Product) (models.Product, error) {
	return p, nil
}

func (s *stubProductBackend) Update(ctx context.Context, p models.Product) error { return nil }
func (s *stubProductBackend) Delete(ctx context.Context, id string) error        { return nil }

type stubOrderBackend struct {
	orders []models.Order
}

func (s *stubOrderBackend) All(ctx context.Context) ([]models.Order, error) { return nil, nil }

func (s *stubOrderBackend) Create(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = "ord12345abc"
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *stubOrderBackend) UpdateStatus(ctx context.Context, id string, st models.OrderStatus) error {
	return nil
}

func (s *stubOrderBackend) Cancel(ctx context.Context, id string) error { return nil }

func newTestRouter(t *testing.T, backend *stubOrderBackend) (*gin.Engine, *store.CartStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := store.NewCatalogStore(&stubProductBackend{products: []models.Product{
		{ID: "p1", Title: "Boxy Tee", Price: "$50", Category: "Essentials"},
	}})
	require.NoError(t, catalog.FetchAll(context.Background()))

	cart := store.NewCartStore()
	orders := store.NewOrdersStore(backend)
	sess := &session.Session{
		ID:       "test-session",
		Cart:     cart,
		Auth:     store.NewAuthStore(anonymousIdentity{}),
		Checkout: store.NewCheckout(cart, orders, 0),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session", sess)
		c.Next()
	})
	r.GET("/cart", GetCart())
	r.POST("/cart/items", AddLine(catalog, nil))
	r.PUT("/cart/items/:product_id", SetQuantity())
	r.DELETE("/cart/items/:product_id", RemoveLine())
	r.POST("/cart/panel/:action", SetPanel())
	r.POST("/cart/checkout", Checkout())
	return r, cart
}

// anonymousIdentity keeps the session's auth store signed out.
type anonymousIdentity struct{}

func (anonymousIdentity) SignUp(ctx context.Context, in store.SignUpInput) (store.AuthUser, error) {
	return store.AuthUser{}, nil
}

func (anonymousIdentity) SignIn(ctx context.Context, email, password string) (store.AuthUser, error) {
	return store.AuthUser{}, nil
}

func (anonymousIdentity) SignInWithGoogle(ctx context.Context, idToken string) (store.AuthUser, error) {
	return store.AuthUser{}, nil
}

func (anonymousIdentity) SignOut(ctx context.Context, uid string) error { return nil }

func (anonymousIdentity) SessionChanges(ctx context.Context, idToken string) <-chan *store.AuthUser {
	ch := make(chan *store.AuthUser, 1)
	ch <- nil
	return ch
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartEndpointsDriveSessionCart(t *testing.T) {
	r, cart := newTestRouter(t, &stubOrderBackend{})

	doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","size":"M"}`)
	doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","size":"M"}`)

	w := doJSON(t, r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var state struct {
		Items []models.CartLine `json:"items"`
		Total float64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.InDelta(t, 100.0, state.Total, 1e-9)

	doJSON(t, r, http.MethodPut, "/cart/items/p1", `{"product_id":"p1","size":"M","quantity":0}`)
	assert.Equal(t, 0, cart.Len())
}

func TestPanelActions(t *testing.T) {
	r, cart := newTestRouter(t, &stubOrderBackend{})

	w := doJSON(t, r, http.MethodPost, "/cart/panel/open", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, cart.IsOpen())

	w = doJSON(t, r, http.MethodPost, "/cart/panel/bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuestCheckoutOverHTTP(t *testing.T) {
	backend := &stubOrderBackend{}
	r, cart := newTestRouter(t, backend)

	doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","size":"M"}`)

	w := doJSON(t, r, http.MethodPost, "/cart/checkout",
		`{"name":"Ana Ruiz","email":"ana@example.com","phone":"5551234567","address":"12 Rue de la Paix"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var conf store.Confirmation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conf))
	assert.Equal(t, "ORD12345", conf.Reference)

	assert.Len(t, backend.orders, 1)
	assert.Equal(t, 0, cart.Len())
}

func TestGuestCheckoutValidationErrorsOverHTTP(t *testing.T) {
	backend := &stubOrderBackend{}
	r, cart := newTestRouter(t, backend)

	doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","size":"M"}`)

	w := doJSON(t, r, http.MethodPost, "/cart/checkout",
		`{"name":"Ana","email":"not-an-email","phone":"123","address":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "phone")
	assert.Contains(t, resp.Errors, "address")

	assert.Empty(t, backend.orders)
	assert.Equal(t, 1, cart.Len())
}

func TestCheckoutEmptyCart(t *testing.T) {
	r, _ := newTestRouter(t, &stubOrderBackend{})

	w := doJSON(t, r, http.MethodPost, "/cart/checkout",
		`{"name":"Ana Ruiz","email":"ana@example.com","phone":"5551234567","address":"12 Rue de la Paix"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
