package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/store"
)

// GET /products/:id
func GetProductByID(catalog *store.CatalogStore, products *services.ProductsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if p, found := catalog.Find(id); found {
			c.JSON(http.StatusOK, p)
			return
		}

		p, err := products.Get(c.Request.Context(), id)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
