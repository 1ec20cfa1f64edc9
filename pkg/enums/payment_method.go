package enums

import "fmt"

// PaymentMethod describes one tender instrument applied to a sale.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodTransfer   PaymentMethod = "transfer"
	PaymentMethodQR         PaymentMethod = "qr"
	PaymentMethodCheck      PaymentMethod = "check"
	PaymentMethodAccount    PaymentMethod = "account"
	PaymentMethodOther      PaymentMethod = "other"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodDebitCard,
	PaymentMethodCreditCard,
	PaymentMethodTransfer,
	PaymentMethodQR,
	PaymentMethodCheck,
	PaymentMethodAccount,
	PaymentMethodOther,
}

// treasuryMethods are the methods whose proceeds land on a treasury cash
// account. Cash is excluded: it only moves the physical drawer balance
// tracked by the register session. Account tenders post to the customer's
// receivable balance instead.
var treasuryMethods = map[PaymentMethod]bool{
	PaymentMethodDebitCard:  true,
	PaymentMethodCreditCard: true,
	PaymentMethodTransfer:   true,
	PaymentMethodQR:         true,
	PaymentMethodCheck:      true,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// PostsToTreasury reports whether the method settles on a treasury account.
func (p PaymentMethod) PostsToTreasury() bool {
	return treasuryMethods[p]
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
