package enums

// CashMovementType classifies a treasury cash account ledger entry.
type CashMovementType string

const (
	CashMovementSaleIncome CashMovementType = "sale_income"
	CashMovementPaid       CashMovementType = "paid"
	CashMovementReceived   CashMovementType = "received"
)

// IsValid reports whether the value is a known CashMovementType.
func (t CashMovementType) IsValid() bool {
	switch t {
	case CashMovementSaleIncome, CashMovementPaid, CashMovementReceived:
		return true
	}
	return false
}
