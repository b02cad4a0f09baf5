package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListLocations handles GET /api/v1/locations
func ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": Catalog.Locations()})
}

// AddLocation handles POST /api/v1/locations
func AddLocation(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Catalog.AddLocation(c.Request.Context(), req.Name); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"locations": Catalog.Locations()})
}

// DeleteLocation handles DELETE /api/v1/locations/:name
// Refused while any product still holds stock at the location.
func DeleteLocation(c *gin.Context) {
	if err := Catalog.DeleteLocation(c.Request.Context(), c.Param("name")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": Catalog.Locations()})
}
