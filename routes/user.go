package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/atelierline/storefront-api/controllers/order"
	userControllers "github.com/atelierline/storefront-api/controllers/user"
	"github.com/atelierline/storefront-api/middleware"
)

// SetupUserRoutes registers the profile endpoints behind Firebase ID-token
// verification.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateUser(deps.AuthClient))
	{
		userGroup.GET("", userControllers.GetUser(deps.Users))
		userGroup.PUT("", userControllers.UpdateUser(deps.Users))
		userGroup.GET("/orders", orderControllers.GetMyOrders(deps.OrderSvc))
	}
}
