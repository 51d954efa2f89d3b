package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/store"
)

// ImportProductsFromExcel bulk-creates products from an uploaded sheet.
// Expected columns: Title, Category, Price, Description, Images
// (comma-separated URLs). Rows with a missing title, an unknown category or
// no images are skipped.
// POST /admin/products/import-excel
func ImportProductsFromExcel(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, skippedCount := 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			title := get(0)
			category := get(1)
			price := get(2)
			description := get(3)
			imagesStr := get(4)

			var images []string
			for _, part := range strings.Split(imagesStr, ",") {
				if url := strings.TrimSpace(part); url != "" {
					images = append(images, url)
				}
			}

			if title == "" || price == "" || !models.IsValidCategory(category) || len(images) == 0 {
				skippedCount++
				continue
			}

			product := models.Product{
				Title:       title,
				Category:    category,
				Price:       price,
				Description: description,
				Images:      images,
			}

			if _, err := catalog.Create(c.Request.Context(), product); err != nil {
				skippedCount++
				continue
			}
			createdCount++
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"skipped": skippedCount,
		})
	}
}
