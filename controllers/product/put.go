package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/store"
)

type UpdateProductInput struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       string   `json:"price" binding:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images" binding:"required,min=1"`
}

// UpdateProduct overwrites an existing product's fields.
// PUT /admin/products/:id
func UpdateProduct(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.IsValidCategory(input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		product := models.Product{
			ID:          c.Param("id"),
			Title:       input.Title,
			Category:    input.Category,
			Price:       input.Price,
			Description: input.Description,
			Images:      input.Images,
		}

		if err := catalog.Update(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
