package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestLedgerTotal(t *testing.T) {
	tests := []struct {
		name   string
		ledger Ledger
		want   int
	}{
		{"nil ledger", nil, 0},
		{"empty ledger", Ledger{}, 0},
		{"single location", Ledger{"Warehouse A": 5}, 5},
		{"multiple locations", Ledger{"Warehouse A": 5, "Warehouse B": 3, "Showroom": 0}, 8},
		{"negative entries count as zero", Ledger{"Warehouse A": 5, "Warehouse B": -3}, 5},
		{"all negative", Ledger{"Warehouse A": -1, "Warehouse B": -2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ledger.Total())
		})
	}
}

func TestLedgerGet(t *testing.T) {
	ledger := Ledger{"Warehouse A": 5}
	assert.Equal(t, 5, ledger.Get("Warehouse A"))
	assert.Equal(t, 0, ledger.Get("Warehouse B"))
}

func TestLedgerClone(t *testing.T) {
	original := Ledger{"Warehouse A": 5}
	clone := original.Clone()
	clone["Warehouse A"] = 99
	clone["Warehouse B"] = 1

	assert.Equal(t, 5, original.Get("Warehouse A"))
	assert.Equal(t, 0, original.Get("Warehouse B"))
	assert.Nil(t, Ledger(nil).Clone())
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		minStock int
		want     string
	}{
		{"zero stock", 0, 5, StatusOutOfStock},
		{"zero stock and zero threshold is out of stock", 0, 0, StatusOutOfStock},
		{"at threshold", 5, 5, StatusLowStock},
		{"below threshold", 3, 5, StatusLowStock},
		{"one unit with zero threshold", 1, 0, StatusOptimal},
		{"above threshold", 6, 5, StatusOptimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatus(tt.total, tt.minStock))
		})
	}
}

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"nil", nil, 0},
		{"int", 7, 7},
		{"float64", 7.9, 7},
		{"negative float", -2.5, -2},
		{"numeric string", "12", 12},
		{"decimal string", "12.7", 12},
		{"padded string", "  8 ", 8},
		{"garbage string", "lots", 0},
		{"empty string", "", 0},
		{"bool", true, 1},
		{"unsupported type", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceQuantity(tt.value))
		})
	}
}

func TestCoerceLedgerClampsNegatives(t *testing.T) {
	ledger := CoerceLedger(map[string]interface{}{
		"Warehouse A": 5.0,
		"Warehouse B": nil,
		"Showroom":    "-3",
		"Cold":        "junk",
	})

	assert.Equal(t, Ledger{"Warehouse A": 5, "Warehouse B": 0, "Showroom": 0, "Cold": 0}, ledger)
	assert.Equal(t, 5, ledger.Total())
}

func TestProductStatusAndValue(t *testing.T) {
	p := Product{
		Price:          decimalFromString(t, "9.50"),
		MinStock:       5,
		LocationStocks: Ledger{"Warehouse A": 2, "Warehouse B": 2},
	}

	assert.Equal(t, 4, p.TotalQuantity())
	assert.Equal(t, StatusLowStock, p.Status())
	assert.Equal(t, "38", p.Value().String())
}
