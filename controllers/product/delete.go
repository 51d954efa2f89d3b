package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/store"
)

// DeleteProduct removes a product and, best effort, its stored images.
// DELETE /admin/products/:id
func DeleteProduct(catalog *store.CatalogStore, images *services.ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		// Grab the image URLs before the catalog entry disappears.
		product, found := catalog.Find(id)

		if err := catalog.Remove(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		if found {
			for _, url := range product.Images {
				if err := images.Delete(c.Request.Context(), url); err != nil {
					log.Printf("⚠️ Failed to delete image %s: %v", url, err)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
