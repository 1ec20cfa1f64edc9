package enums

import "fmt"

// StockMovementType classifies an append-only stock ledger entry.
type StockMovementType string

const (
	StockMovementSale       StockMovementType = "sale"
	StockMovementPurchase   StockMovementType = "purchase"
	StockMovementAdjustment StockMovementType = "adjustment"
)

var validStockMovementTypes = []StockMovementType{
	StockMovementSale,
	StockMovementPurchase,
	StockMovementAdjustment,
}

// IsValid reports whether the value is a known StockMovementType.
func (t StockMovementType) IsValid() bool {
	for _, candidate := range validStockMovementTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseStockMovementType converts raw input into a StockMovementType.
func ParseStockMovementType(value string) (StockMovementType, error) {
	for _, candidate := range validStockMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock movement type %q", value)
}
