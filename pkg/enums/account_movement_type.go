package enums

// AccountMovementType classifies a customer account ledger entry.
type AccountMovementType string

const (
	AccountMovementCharge     AccountMovementType = "charge"
	AccountMovementPayment    AccountMovementType = "payment"
	AccountMovementAdjustment AccountMovementType = "adjustment"
)

// IsValid reports whether the value is a known AccountMovementType.
func (t AccountMovementType) IsValid() bool {
	switch t {
	case AccountMovementCharge, AccountMovementPayment, AccountMovementAdjustment:
		return true
	}
	return false
}
