package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	MinStock       int             `json:"minStock"`
	LocationStocks Ledger          `json:"locationStocks"`
	Image          string          `json:"image,omitempty"`
	Description    string          `json:"description,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	SuggestedSKU   string          `json:"suggestedSku,omitempty"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// TotalQuantity is the product's on-hand quantity across all locations.
func (p *Product) TotalQuantity() int {
	return p.LocationStocks.Total()
}

// Status classifies the product against its reorder threshold.
func (p *Product) Status() string {
	return StockStatus(p.TotalQuantity(), p.MinStock)
}

// Value is the product's contribution to portfolio valuation.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.TotalQuantity())))
}
