package routes

import (
	"github.com/gin-gonic/gin"

	adminControllers "github.com/atelierline/storefront-api/controllers/admin"
	contactControllers "github.com/atelierline/storefront-api/controllers/contact"
	orderControllers "github.com/atelierline/storefront-api/controllers/order"
	productcontroller "github.com/atelierline/storefront-api/controllers/product"
	userControllers "github.com/atelierline/storefront-api/controllers/user"
	"github.com/atelierline/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Access requires an
// admin profile's ID token or the back-office API key.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(deps.AuthClient, deps.Users))
	{
		adminGroup.GET("/dashboard", adminControllers.GetDashboard(deps.Catalog, deps.Orders, deps.Messages))
		adminGroup.GET("/users", userControllers.GetAllUsers(deps.Users))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(deps.Catalog, deps.Images))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(deps.Catalog))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(deps.Catalog, deps.Images))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(deps.Catalog))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(deps.Catalog))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(deps.Orders))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatus(deps.Orders))
			orderAdmin.DELETE("/:id", orderControllers.CancelOrder(deps.Orders))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(deps.Orders))
		}

		messageAdmin := adminGroup.Group("/messages")
		{
			messageAdmin.GET("", contactControllers.GetAllMessages(deps.Messages))
			messageAdmin.PUT("/:id/read", contactControllers.MarkMessageRead(deps.Messages))
			messageAdmin.DELETE("/:id", contactControllers.DeleteMessage(deps.Messages))
		}
	}

	// Live order feed for the back-office dashboard.
	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
}
