package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventorypro-server/config"
	"inventorypro-server/models"
	"inventorypro-server/storage"
	"inventorypro-server/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	snapshots, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	catalog, err := store.Open(context.Background(), snapshots, true)
	require.NoError(t, err)
	Catalog = catalog

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", Signup)
		api.POST("/auth/login", Login)
		api.GET("/products", ListProducts)
		api.POST("/products", CreateProduct)
		api.POST("/products/:id/transfer", TransferStock)
		api.GET("/products/:id/barcode", GetProductBarcode)
		api.GET("/stats", GetStats)
		api.GET("/export", ExportProducts)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createTestProduct(t *testing.T) models.Product {
	t.Helper()
	product, err := Catalog.SaveProduct(context.Background(), models.Product{
		SKU:            "A1",
		Name:           "Widget",
		Category:       "Electronics",
		Price:          decimal.NewFromFloat(9.99),
		MinStock:       5,
		LocationStocks: models.Ledger{"Warehouse A": 5, "Warehouse B": 0},
	})
	require.NoError(t, err)
	return product
}

func TestTransferEndpoint(t *testing.T) {
	router := setupRouter(t)
	product := createTestProduct(t)

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/products/%s/transfer", product.ID),
		gin.H{"from": "Warehouse A", "to": "Warehouse B", "amount": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Product       models.Product `json:"product"`
		TotalQuantity int            `json:"totalQuantity"`
		Status        string         `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.Ledger{"Warehouse A": 2, "Warehouse B": 3}, resp.Product.LocationStocks)
	assert.Equal(t, 5, resp.TotalQuantity)
	assert.Equal(t, models.StatusLowStock, resp.Status)
}

func TestTransferEndpointInsufficientStock(t *testing.T) {
	router := setupRouter(t)
	product := createTestProduct(t)

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/products/%s/transfer", product.ID),
		gin.H{"from": "Warehouse A", "to": "Warehouse B", "amount": 10})
	assert.Equal(t, http.StatusConflict, rec.Code)

	unchanged, err := Catalog.Product(product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Ledger{"Warehouse A": 5, "Warehouse B": 0}, unchanged.LocationStocks)
}

func TestTransferEndpointInvalidRoute(t *testing.T) {
	router := setupRouter(t)
	product := createTestProduct(t)

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/products/%s/transfer", product.ID),
		gin.H{"from": "Warehouse A", "to": "Warehouse A", "amount": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndListProducts(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"sku":            "C3",
		"name":           "Cable",
		"price":          "4.50",
		"locationStocks": gin.H{"Showroom": 2},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products?q=cab", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []struct {
			Product models.Product `json:"product"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Cable", resp.Products[0].Product.Name)
	assert.Equal(t, "4.5", resp.Products[0].Product.Price.String())
}

func TestStatsEndpoint(t *testing.T) {
	router := setupRouter(t)
	createTestProduct(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stats store.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stats.TotalItems)
	assert.Equal(t, 1, resp.Stats.LowStock)
	assert.Equal(t, "49.95", resp.Stats.TotalValue.String())
}

func TestBarcodeEndpoint(t *testing.T) {
	router := setupRouter(t)
	product := createTestProduct(t)

	rec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/products/%s/barcode", product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", string(rec.Body.Bytes()[:4]))
}

func TestExportEndpointRejectsUnknownFormat(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/export?format=doc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupAndLogin(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup",
		gin.H{"username": "ana", "password": "secret", "full_name": "Ana Admin"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, models.RoleAdmin, signup.User.Role, "first account becomes admin")
	assert.Empty(t, signup.User.PasswordHash)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		gin.H{"username": "ana", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		gin.H{"username": "ana", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
