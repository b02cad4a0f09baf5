package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Ledger maps a storage location name to the on-hand quantity held there.
// An absent key means zero.
type Ledger map[string]int

// Stock status values derived from a ledger total and a reorder threshold.
const (
	StatusOutOfStock = "out-of-stock"
	StatusLowStock   = "low-stock"
	StatusOptimal    = "optimal"
)

// Total returns the on-hand quantity across all locations. Negative
// entries can appear in imported or hand-edited snapshots; they count
// as zero so a corrupt entry can never drag the total below the stock
// actually held elsewhere.
func (l Ledger) Total() int {
	total := 0
	for _, qty := range l {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

// Get returns the quantity at a location, zero when absent.
func (l Ledger) Get(location string) int {
	return l[location]
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	for loc, qty := range l {
		out[loc] = qty
	}
	return out
}

// StockStatus classifies a total quantity against a reorder threshold.
// Zero stock is always out-of-stock, even when the threshold is zero.
func StockStatus(total, minStock int) string {
	switch {
	case total <= 0:
		return StatusOutOfStock
	case total <= minStock:
		return StatusLowStock
	default:
		return StatusOptimal
	}
}

// CoerceQuantity converts an untyped quantity value into an int. Values
// arrive as float64 from JSON, as strings from spreadsheets and XML, and
// occasionally as null or garbage in malformed snapshots; everything
// unusable becomes zero.
func CoerceQuantity(v interface{}) int {
	switch value := v.(type) {
	case nil:
		return 0
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case float32:
		return int(value)
	case bool:
		if value {
			return 1
		}
		return 0
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return int(f)
		}
		return 0
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// CoerceLedger builds a ledger from an untyped location map, coercing
// each value and clamping negatives to zero so the no-negative-entry
// invariant holds for anything that reaches the catalog.
func CoerceLedger(raw map[string]interface{}) Ledger {
	ledger := make(Ledger, len(raw))
	for location, value := range raw {
		qty := CoerceQuantity(value)
		if qty < 0 {
			qty = 0
		}
		ledger[location] = qty
	}
	return ledger
}
