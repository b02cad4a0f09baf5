package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductDoc is the untyped wire/snapshot shape of a product. Snapshots
// written by older versions of the application carry a single quantity
// and location instead of a per-location ledger, and imported documents
// can hold anything at all in the numeric fields, so every field is
// coerced independently instead of trusting the document.
type ProductDoc struct {
	ID             string                 `json:"id"`
	SKU            string                 `json:"sku"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	Price          interface{}            `json:"price"`
	MinStock       interface{}            `json:"minStock"`
	LocationStocks map[string]interface{} `json:"locationStocks"`
	Image          string                 `json:"image"`
	Description    string                 `json:"description"`
	Tags           []string               `json:"tags"`
	SuggestedSKU   string                 `json:"suggestedSku"`
	LastUpdated    string                 `json:"lastUpdated"`

	// Legacy single-location shape, reshaped on load when
	// locationStocks is absent.
	Quantity interface{} `json:"quantity"`
	Location string      `json:"location"`
}

// Product converts the document into a well-typed record. It never
// fails; unusable fields default rather than rejecting the document.
func (d ProductDoc) Product() Product {
	var ledger Ledger
	if d.LocationStocks != nil {
		ledger = CoerceLedger(d.LocationStocks)
	} else {
		location := strings.TrimSpace(d.Location)
		if location == "" {
			location = "Unassigned"
		}
		qty := CoerceQuantity(d.Quantity)
		if qty < 0 {
			qty = 0
		}
		ledger = Ledger{location: qty}
	}

	minStock := CoerceQuantity(d.MinStock)
	if minStock < 0 {
		minStock = 0
	}

	var lastUpdated time.Time
	if d.LastUpdated != "" {
		if parsed, err := time.Parse(time.RFC3339, d.LastUpdated); err == nil {
			lastUpdated = parsed
		}
	}

	return Product{
		ID:             d.ID,
		SKU:            strings.TrimSpace(d.SKU),
		Name:           strings.TrimSpace(d.Name),
		Category:       strings.TrimSpace(d.Category),
		Price:          CoercePrice(d.Price),
		MinStock:       minStock,
		LocationStocks: ledger,
		Image:          d.Image,
		Description:    d.Description,
		Tags:           d.Tags,
		SuggestedSKU:   d.SuggestedSKU,
		LastUpdated:    lastUpdated,
	}
}

// CoercePrice converts an untyped price value into a non-negative
// decimal, defaulting to zero for anything unusable.
func CoercePrice(v interface{}) decimal.Decimal {
	var price decimal.Decimal
	switch value := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		price = decimal.NewFromFloat(value)
	case float32:
		price = decimal.NewFromFloat32(value)
	case int:
		price = decimal.NewFromInt(int64(value))
	case int64:
		price = decimal.NewFromInt(value)
	case decimal.Decimal:
		price = value
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(value, "$"))
		if s == "" {
			return decimal.Zero
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		price = parsed
	default:
		return decimal.Zero
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}
