package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventorypro-server/services"
)

// AI enrichment endpoints. Every call is a pure lookup: failures
// surface as errors and never touch the catalog. Applying a result is
// a separate product save, so an enrichment racing a manual edit
// resolves to whichever write lands last.

func requireGemini(c *gin.Context) bool {
	if services.Gemini == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI research is not configured"})
		return false
	}
	return true
}

// MarketResearch handles POST /api/v1/ai/market-research
func MarketResearch(c *gin.Context) {
	if !requireGemini(c) {
		return
	}

	var req struct {
		ProductName string `json:"product_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.Gemini.GetMarketPrice(c.Request.Context(), req.ProductName)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI analysis failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// FindSuppliers handles POST /api/v1/ai/suppliers
func FindSuppliers(c *gin.Context) {
	if !requireGemini(c) {
		return
	}

	var req struct {
		ProductName string  `json:"product_name" binding:"required"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.Gemini.FindSuppliers(c.Request.Context(), req.ProductName, req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Supplier lookup failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateDescription handles POST /api/v1/ai/describe
func GenerateDescription(c *gin.Context) {
	if !requireGemini(c) {
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description, err := services.Gemini.GenerateDescription(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate description"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}

// AnalyzeProductImage handles POST /api/v1/ai/analyze-image
func AnalyzeProductImage(c *gin.Context) {
	if !requireGemini(c) {
		return
	}

	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := services.Gemini.AnalyzeProductImage(c.Request.Context(), req.Image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image analysis failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
