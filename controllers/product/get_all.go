package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/store"
)

// GET /products
func GetProducts(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Filtering params
		search := strings.ToLower(c.Query("search"))
		category := c.Query("category")

		// The backend list replaces the in-memory one wholesale; the
		// response is served from store state, newest first.
		if err := catalog.FetchAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		products := catalog.Products()
		if search == "" && category == "" {
			c.JSON(http.StatusOK, products)
			return
		}

		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if category != "" && p.Category != category {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Title), search) &&
				!strings.Contains(strings.ToLower(p.Description), search) {
				continue
			}
			filtered = append(filtered, p)
		}
		c.JSON(http.StatusOK, filtered)
	}
}

// GET /categories
func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Categories)
	}
}
