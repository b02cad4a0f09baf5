package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventorypro-server/models"
)

var testOpts = ImportOptions{
	Locations:       []string{"Warehouse A", "Warehouse B", "Showroom"},
	DefaultMinStock: 5,
}

func TestParseImportCSV(t *testing.T) {
	csvData := "SKU,name,Category,PRICE,Min Stock,Description,Warehouse A,warehouse b,Ignored\n" +
		"A1,Widget,Electronics,9.99,3,Solid widget,5,2,junk\n" +
		"B2,Gadget,,not-a-price,,,-4,oops,\n" +
		",,,,,,,,\n"

	products, err := ParseImport("inventory.csv", []byte(csvData), testOpts)
	require.NoError(t, err)
	require.Len(t, products, 2, "empty rows are skipped, bad rows are kept")

	widget := products[0]
	assert.Equal(t, "A1", widget.SKU)
	assert.Equal(t, "Widget", widget.Name)
	assert.Equal(t, "Electronics", widget.Category)
	assert.Equal(t, "9.99", widget.Price.String())
	assert.Equal(t, 3, widget.MinStock)
	assert.Equal(t, models.Ledger{"Warehouse A": 5, "Warehouse B": 2}, widget.LocationStocks)

	gadget := products[1]
	assert.True(t, gadget.Price.IsZero(), "malformed price defaults to zero")
	assert.Equal(t, testOpts.DefaultMinStock, gadget.MinStock, "missing threshold takes the default")
	assert.Equal(t, models.Ledger{"Warehouse A": 0, "Warehouse B": 0}, gadget.LocationStocks,
		"negative and malformed quantities clamp to zero")
}

func TestParseImportCSVNameFallsBackToSKU(t *testing.T) {
	csvData := "sku,name\nA1,\n"

	products, err := ParseImport("x.csv", []byte(csvData), testOpts)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A1", products[0].Name)
}

func TestParseImportJSON(t *testing.T) {
	jsonData := `[
		{"sku":"A1","name":"Widget","category":"Electronics","price":9.99,
		 "minStock":3,"locationStocks":{"Warehouse A":5,"Warehouse B":"2"}},
		{"sku":"L1","name":"Legacy","quantity":4,"location":"Showroom"},
		{"description":"no name, skipped"}
	]`

	products, err := ParseImport("inventory.json", []byte(jsonData), testOpts)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, models.Ledger{"Warehouse A": 5, "Warehouse B": 2}, products[0].LocationStocks)
	assert.Empty(t, products[0].ID, "imported records mint fresh ids")

	legacy := products[1]
	assert.Equal(t, models.Ledger{"Showroom": 4}, legacy.LocationStocks)
	assert.Equal(t, testOpts.DefaultMinStock, legacy.MinStock)
}

func TestParseImportUnsupportedFormat(t *testing.T) {
	_, err := ParseImport("inventory.pdf", []byte("%PDF"), testOpts)
	assert.Error(t, err)
}

func roundTripProducts(t *testing.T) []models.Product {
	t.Helper()
	return []models.Product{
		{
			ID:             "p1",
			SKU:            "A1",
			Name:           "Widget",
			Category:       "Electronics",
			Price:          decimal.RequireFromString("9.99"),
			MinStock:       3,
			Description:    "Solid widget",
			LocationStocks: models.Ledger{"Warehouse A": 5, "Warehouse B": 2},
		},
		{
			ID:             "p2",
			SKU:            "B2",
			Name:           "Gadget",
			Category:       "",
			Price:          decimal.RequireFromString("120"),
			MinStock:       0,
			LocationStocks: models.Ledger{"Showroom": 1},
		},
	}
}

func assertRoundTrip(t *testing.T, original, reimported []models.Product) {
	t.Helper()
	require.Len(t, reimported, len(original))
	for i, want := range original {
		got := reimported[i]
		assert.Equal(t, want.SKU, got.SKU)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Category, got.Category)
		assert.True(t, want.Price.Equal(got.Price), "price %s != %s", want.Price, got.Price)
		assert.Equal(t, want.LocationStocks, got.LocationStocks)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := roundTripProducts(t)

	doc, err := ExportJSON(original)
	require.NoError(t, err)

	reimported, err := ParseImport("inventory.json", doc, testOpts)
	require.NoError(t, err)
	assertRoundTrip(t, original, reimported)
}

func TestXMLRoundTrip(t *testing.T) {
	original := roundTripProducts(t)

	doc, err := ExportXML(original)
	require.NoError(t, err)

	reimported, err := ParseImport("inventory.xml", doc, testOpts)
	require.NoError(t, err)
	assertRoundTrip(t, original, reimported)
}

func TestXLSXRoundTrip(t *testing.T) {
	original := roundTripProducts(t)
	locations := testOpts.Locations

	doc, err := ExportXLSX(original, locations)
	require.NoError(t, err)

	reimported, err := ParseImport("inventory.xlsx", doc, testOpts)
	require.NoError(t, err)

	require.Len(t, reimported, len(original))
	for i, want := range original {
		got := reimported[i]
		assert.Equal(t, want.SKU, got.SKU)
		assert.True(t, want.Price.Equal(got.Price))
		for _, location := range locations {
			assert.Equal(t, want.LocationStocks.Get(location), got.LocationStocks.Get(location))
		}
	}
}

func TestExportCSVShape(t *testing.T) {
	doc, err := ExportCSV(roundTripProducts(t), testOpts.Locations)
	require.NoError(t, err)

	out := string(doc)
	assert.Contains(t, out, "SKU,Name,Category,Price,MinStock,Description,Warehouse A,Warehouse B,Showroom,Total")
	assert.Contains(t, out, "A1,Widget,Electronics,9.99,3,Solid widget,5,2,0,7")
}

func TestExportPDFProducesDocument(t *testing.T) {
	doc, err := ExportPDF(roundTripProducts(t), testOpts.Locations)
	require.NoError(t, err)
	assert.True(t, len(doc) > 4 && string(doc[:4]) == "%PDF")
}
