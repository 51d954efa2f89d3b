package routes

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/session"
	"github.com/atelierline/storefront-api/store"
)

// Deps carries everything the route groups need. Handlers are factories so
// each group pulls only what it uses.
type Deps struct {
	Catalog  *store.CatalogStore
	Orders   *store.OrdersStore
	Sessions *session.Manager

	Products *services.ProductsService
	OrderSvc *services.OrdersService
	Users    *services.UsersService
	Messages *services.MessagesService
	Images   *services.ImageStorage
	Mailer   *services.Mailer

	AuthClient *fbauth.Client
}

// SetupRoutes wires up the public shop, session-bound, user and admin groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public catalog, contact form and session bootstrap
	SetupShopRoutes(r, deps)

	// Session-scoped cart, checkout and auth state (guest session token)
	SetupSessionRoutes(r, deps)

	// Profile and order history (Firebase ID token)
	SetupUserRoutes(r, deps)

	// Back office (admin profile or API key)
	SetupAdminRoutes(r, deps)
}
