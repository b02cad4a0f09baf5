package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventorypro-server/services"
)

const maxImportSize = 16 << 20 // 16 MiB

// ImportProducts handles POST /api/v1/import
// Accepts a multipart "file" in CSV, XLSX, XML, or JSON format. Bad
// rows degrade via defaulting; only an unreadable file fails the
// request, and then nothing is added.
func ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import file is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Import file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read import file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read import file"})
		return
	}

	products, err := services.ParseImport(fileHeader.Filename, data, services.ImportOptions{
		Locations:       Catalog.Locations(),
		DefaultMinStock: Catalog.Settings().DefaultMinStock,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	added, err := Catalog.ImportProducts(c.Request.Context(), products)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": added})
}

// ExportProducts handles GET /api/v1/export?format=csv|xlsx|json|xml|pdf
func ExportProducts(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	doc, contentType, filename, err := services.Export(format, Catalog.Products(), Catalog.Locations())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, doc)
}
