// Package handlers exposes the catalog over gin. Handlers hold no
// state of their own; everything goes through the shared catalog store
// and the external collaborator services.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventorypro-server/store"
)

// Catalog is the shared catalog store, set once from main before the
// router starts serving.
var Catalog *store.Store

// respondStoreError maps domain errors onto HTTP statuses. Every
// mapped failure left the catalog untouched.
func respondStoreError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, store.ErrLocationNotFound),
		errors.Is(err, store.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidRoute),
		errors.Is(err, store.ErrInvalidProduct),
		errors.Is(err, store.ErrInvalidCategory),
		errors.Is(err, store.ErrInvalidLocation),
		errors.Is(err, store.ErrInvalidUser):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrDuplicateLocation),
		errors.Is(err, store.ErrLocationInUse),
		errors.Is(err, store.ErrDuplicateUser),
		errors.Is(err, store.ErrLastAdmin):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
