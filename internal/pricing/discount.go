package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// Discount is the single internal representation of both discount input
// shapes. The zero value means "no discount".
type Discount struct {
	Type  enums.DiscountType
	Value decimal.Decimal
}

// None is the absent discount.
var None = Discount{}

// PercentageDiscount builds a percentage discount.
func PercentageDiscount(value decimal.Decimal) Discount {
	return Discount{Type: enums.DiscountTypePercentage, Value: value}
}

// FixedDiscount builds a fixed-amount discount.
func FixedDiscount(value decimal.Decimal) Discount {
	return Discount{Type: enums.DiscountTypeFixed, Value: value}
}

// IsZero reports whether the discount is absent.
func (d Discount) IsZero() bool {
	return d.Type == ""
}

// Resolve folds the dual discount representation into one value. The typed
// {type, value} pair wins whenever both it and a legacy single-field shape
// are present; callers translate their legacy field into the fallback.
func Resolve(discountType *enums.DiscountType, value *decimal.Decimal, fallback Discount) Discount {
	if discountType != nil && discountType.IsValid() && value != nil {
		return Discount{Type: *discountType, Value: *value}
	}
	return fallback
}
