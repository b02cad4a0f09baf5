package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventorypro-server/models"
)

// ListCategories handles GET /api/v1/categories
func ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": Catalog.Categories()})
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := Catalog.SaveCategory(c.Request.Context(), models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory handles PUT /api/v1/categories/:id
// Renames cascade to every product referencing the old name.
func UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := Catalog.SaveCategory(c.Request.Context(), models.Category{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles DELETE /api/v1/categories/:id
// Referencing products are moved to the unassigned category.
func DeleteCategory(c *gin.Context) {
	if err := Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
