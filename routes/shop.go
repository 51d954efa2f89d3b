package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/atelierline/storefront-api/controllers/auth"
	cartControllers "github.com/atelierline/storefront-api/controllers/cart"
	contactControllers "github.com/atelierline/storefront-api/controllers/contact"
	productcontroller "github.com/atelierline/storefront-api/controllers/product"
	"github.com/atelierline/storefront-api/middleware"
)

// SetupShopRoutes registers the endpoints anyone can hit without a token.
func SetupShopRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", productcontroller.GetProducts(deps.Catalog))
	r.GET("/products/:id", productcontroller.GetProductByID(deps.Catalog, deps.Products))
	r.GET("/categories", productcontroller.GetCategories())

	r.POST("/contact", contactControllers.SubmitMessage(deps.Messages, deps.Mailer))

	// Session bootstrap; every browser gets one before touching the cart.
	r.POST("/auth/guest", authControllers.StartSession(deps.Sessions))
}

// SetupSessionRoutes registers everything scoped to one browsing session:
// the cart, the checkout flow and the session's auth state.
func SetupSessionRoutes(r *gin.Engine, deps Deps) {
	sessionGroup := r.Group("/")
	sessionGroup.Use(middleware.ValidateSession(deps.Sessions))
	{
		authGroup := sessionGroup.Group("/auth")
		{
			authGroup.POST("/signup", authControllers.SignUp())
			authGroup.POST("/signin", authControllers.SignIn())
			authGroup.POST("/google", authControllers.SignInWithGoogle())
			authGroup.POST("/signout", authControllers.SignOut())
			authGroup.POST("/session", authControllers.CheckSession())
		}

		cartGroup := sessionGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart())
			cartGroup.POST("/items", cartControllers.AddLine(deps.Catalog, deps.Products))
			cartGroup.PUT("/items/:product_id", cartControllers.SetQuantity())
			cartGroup.DELETE("/items/:product_id", cartControllers.RemoveLine())
			cartGroup.DELETE("", cartControllers.ClearCart())
			cartGroup.POST("/panel/:action", cartControllers.SetPanel())
			cartGroup.POST("/checkout", cartControllers.Checkout())
			cartGroup.GET("/confirmation", cartControllers.GetConfirmation())
		}
	}
}
