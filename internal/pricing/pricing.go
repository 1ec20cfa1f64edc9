package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// Pure price arithmetic shared by the sale posting path and catalog
// tooling. Monetary results are rounded to 2 decimals, half up. Prices are
// tax-inclusive throughout: tax is extracted from a gross total, never
// added on top.

var (
	hundred = decimal.NewFromInt(100)

	roundingSteps = map[enums.RoundingStrategy]decimal.Decimal{
		enums.RoundingNearestFive:    decimal.NewFromInt(5),
		enums.RoundingNearestTen:     decimal.NewFromInt(10),
		enums.RoundingNearestFifty:   decimal.NewFromInt(50),
		enums.RoundingNearestHundred: decimal.NewFromInt(100),
	}
)

// Margin returns the margin percentage between cost and sale price,
// rounded to 2 decimals. A non-positive cost yields 0.
func Margin(cost, sale decimal.Decimal) decimal.Decimal {
	if cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(cost).Mul(hundred).Round(2)
}

// SalePrice derives a sale price from cost and margin percentage.
// A non-positive cost yields 0.
func SalePrice(cost, marginPercent decimal.Decimal) decimal.Decimal {
	if cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	factor := decimal.NewFromInt(1).Add(marginPercent.Div(hundred))
	return cost.Mul(factor).Round(2)
}

// CostPrice derives a cost price from a sale price and margin percentage.
// Yields 0 when the sale price is non-positive or the margin is -100% or
// lower (the divisor would be zero or negative).
func CostPrice(sale, marginPercent decimal.Decimal) decimal.Decimal {
	if sale.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	factor := decimal.NewFromInt(1).Add(marginPercent.Div(hundred))
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return sale.Div(factor).Round(2)
}

// Round rounds a price up to the next multiple of the strategy's step.
// Values already on the step stay put; RoundingNone returns the value
// unchanged.
func Round(value decimal.Decimal, strategy enums.RoundingStrategy) decimal.Decimal {
	step, ok := roundingSteps[strategy]
	if !ok {
		return value
	}
	return value.Div(step).Ceil().Mul(step)
}

// ExtractTax pulls the tax component out of a tax-inclusive total:
// total * rate / (100 + rate), rounded to 2 decimals.
func ExtractTax(total, taxRate decimal.Decimal) decimal.Decimal {
	if taxRate.LessThanOrEqual(decimal.Zero) || total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return total.Mul(taxRate).Div(hundred.Add(taxRate)).Round(2)
}

// DiscountAmount computes the money amount a discount takes off base.
// The result is clamped to [0, base]: negative values count as no
// discount and a fixed discount never exceeds the base amount.
func DiscountAmount(base decimal.Decimal, d Discount) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) || d.IsZero() {
		return decimal.Zero
	}
	if d.Value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch d.Type {
	case enums.DiscountTypePercentage:
		amount = base.Mul(d.Value).Div(hundred).Round(2)
	case enums.DiscountTypeFixed:
		amount = d.Value.Round(2)
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(base) {
		return base.Round(2)
	}
	return amount
}

// ApplyDiscount returns base minus the discount amount, never negative.
func ApplyDiscount(base decimal.Decimal, d Discount) decimal.Decimal {
	result := base.Sub(DiscountAmount(base, d))
	if result.IsNegative() {
		return decimal.Zero
	}
	return result.Round(2)
}

// DiscountPercentage derives the effective percentage a discounted price
// represents against its base, clamped to [0, 100]. A non-positive base
// yields 0.
func DiscountPercentage(base, discounted decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	pct := base.Sub(discounted).Div(base).Mul(hundred).Round(2)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
