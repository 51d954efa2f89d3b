package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/store"
)

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// GET /admin/orders
func GetAllOrders(orders *store.OrdersStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orders.FetchAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders.Orders())
	}
}

// PUT /admin/orders/:id/status
func UpdateOrderStatus(orders *store.OrdersStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id := c.Param("id")
		if err := orders.UpdateStatus(c.Request.Context(), id, status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
	}
}

// DELETE /admin/orders/:id
//
// Deleting an order forces it into the cancelled status on the backend;
// the document itself is never removed.
func CancelOrder(orders *store.OrdersStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}

// GET /user/orders
func GetMyOrders(ordersSvc *services.OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orders, err := ordersSvc.ForUser(c.Request.Context(), userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
