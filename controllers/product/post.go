package productcontroller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/store"
)

// CreateProduct creates a new product with one or more uploaded images.
// POST /admin/products (multipart form)
func CreateProduct(catalog *store.CatalogStore, images *services.ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		title := c.PostForm("title")
		category := c.PostForm("category")
		price := c.PostForm("price")
		if title == "" || category == "" || price == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, category, and price are required"})
			return
		}
		if !models.IsValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		// Optional fields
		description := c.PostForm("description")

		// Image upload — at least one image is required
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
			return
		}

		var imageURLs []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to read image: %v", err)})
				return
			}
			url, err := images.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
			src.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to upload image: %v", err)})
				return
			}
			imageURLs = append(imageURLs, url)
		}

		product := models.Product{
			Title:       title,
			Category:    category,
			Price:       price,
			Description: description,
			Images:      imageURLs,
		}

		created, err := catalog.Create(c.Request.Context(), product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}
