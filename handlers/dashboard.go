package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventorypro-server/models"
)

// GetStats handles GET /api/v1/stats
func GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": Catalog.Stats()})
}

// GetActivity handles GET /api/v1/activity
func GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activity": Catalog.Activity()})
}

// GetSettings handles GET /api/v1/settings
func GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": Catalog.Settings()})
}

// UpdateSettings handles PUT /api/v1/settings
func UpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Catalog.UpdateSettings(c.Request.Context(), req); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": Catalog.Settings()})
}
