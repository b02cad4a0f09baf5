package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventorypro-server/models"
	"inventorypro-server/services"
)

// productView augments a product with its derived aggregates so
// clients never recompute classification rules.
func productView(p models.Product) gin.H {
	return gin.H{
		"product":       p,
		"totalQuantity": p.TotalQuantity(),
		"status":        p.Status(),
	}
}

// ListProducts handles GET /api/v1/products?q=
func ListProducts(c *gin.Context) {
	products := Catalog.SearchProducts(c.Query("q"))

	views := make([]gin.H, len(products))
	for i, p := range products {
		views[i] = productView(p)
	}
	c.JSON(http.StatusOK, gin.H{"products": views})
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	product, err := Catalog.Product(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, productView(product))
}

type productRequest struct {
	SKU            string        `json:"sku"`
	Name           string        `json:"name" binding:"required"`
	Category       string        `json:"category"`
	Price          interface{}   `json:"price"`
	MinStock       *int          `json:"minStock"`
	LocationStocks models.Ledger `json:"locationStocks"`
	Image          string        `json:"image"`
	Description    string        `json:"description"`
	Tags           []string      `json:"tags"`
	SuggestedSKU   string        `json:"suggestedSku"`
}

func (r *productRequest) product(id string) models.Product {
	minStock := Catalog.Settings().DefaultMinStock
	if r.MinStock != nil {
		minStock = *r.MinStock
	}
	return models.Product{
		ID:             id,
		SKU:            r.SKU,
		Name:           r.Name,
		Category:       r.Category,
		Price:          models.CoercePrice(r.Price),
		MinStock:       minStock,
		LocationStocks: r.LocationStocks,
		Image:          r.Image,
		Description:    r.Description,
		Tags:           r.Tags,
		SuggestedSKU:   r.SuggestedSKU,
	}
}

// CreateProduct handles POST /api/v1/products
func CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := Catalog.SaveProduct(c.Request.Context(), req.product(""))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productView(product))
}

// UpdateProduct handles PUT /api/v1/products/:id
func UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := Catalog.SaveProduct(c.Request.Context(), req.product(c.Param("id")))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, productView(product))
}

// DeleteProduct handles DELETE /api/v1/products/:id
func DeleteProduct(c *gin.Context) {
	if err := Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// TransferStock handles POST /api/v1/products/:id/transfer
func TransferStock(c *gin.Context) {
	var req struct {
		From   string `json:"from" binding:"required"`
		To     string `json:"to" binding:"required"`
		Amount int    `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := Catalog.TransferStock(c.Request.Context(), c.Param("id"), req.From, req.To, req.Amount)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, productView(product))
}

// GetProductBarcode handles GET /api/v1/products/:id/barcode
func GetProductBarcode(c *gin.Context) {
	product, err := Catalog.Product(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if product.SKU == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Product has no SKU"})
		return
	}

	img, err := services.RenderBarcode(product.SKU, 300, 80)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render barcode"})
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

// UploadProductImage handles POST /api/v1/products/:id/image
func UploadProductImage(c *gin.Context) {
	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	product, err := Catalog.Product(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}
	defer file.Close()

	url, err := services.Cloudinary.UploadProductImage(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
		return
	}

	product.Image = url
	updated, err := Catalog.SaveProduct(c.Request.Context(), product)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, productView(updated))
}
