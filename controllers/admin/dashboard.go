package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/store"
)

// GetDashboard returns the back-office landing counters.
// GET /admin/dashboard
func GetDashboard(catalog *store.CatalogStore, orders *store.OrdersStore, messages *services.MessagesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := catalog.FetchAll(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if err := orders.FetchAll(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		msgs, err := messages.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}

		unread := 0
		for _, m := range msgs {
			if !m.IsRead {
				unread++
			}
		}

		byStatus := map[string]int{}
		for _, o := range orders.Orders() {
			byStatus[string(o.Status)]++
		}

		c.JSON(http.StatusOK, gin.H{
			"products":         len(catalog.Products()),
			"categories":       len(models.Categories),
			"orders":           len(orders.Orders()),
			"orders_by_status": byStatus,
			"messages":         len(msgs),
			"unread_messages":  unread,
		})
	}
}
