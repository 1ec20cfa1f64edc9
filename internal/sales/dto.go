package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// OperatorContext carries the authenticated tenant/operator scope a sale
// posts under. LocationID is optional; the register resolution falls back
// to the tenant's default location.
type OperatorContext struct {
	TenantID   uuid.UUID
	OperatorID uuid.UUID
	LocationID *uuid.UUID
}

// ItemInput is one cart line. The discount accepts both shapes: the typed
// {type, value} pair and the legacy single percentage, with the pair
// taking precedence when both are present.
type ItemInput struct {
	ProductID             *uuid.UUID          `json:"product_id" validate:"required_without=VariantID"`
	VariantID             *uuid.UUID          `json:"variant_id"`
	Quantity              int                 `json:"quantity" validate:"required,gt=0"`
	UnitPrice             decimal.Decimal     `json:"unit_price" validate:"required"`
	TaxRate               decimal.Decimal     `json:"tax_rate"`
	DiscountType          *enums.DiscountType `json:"discount_type,omitempty"`
	DiscountValue         *decimal.Decimal    `json:"discount_value,omitempty"`
	LegacyDiscountPercent *decimal.Decimal    `json:"discount_percent,omitempty"`
}

// PaymentInput is one tender entry.
type PaymentInput struct {
	Method            enums.PaymentMethod `json:"method" validate:"required"`
	Amount            decimal.Decimal     `json:"amount" validate:"required"`
	CardLastFour      *string             `json:"card_last_four,omitempty" validate:"omitempty,len=4"`
	TransferReference *string             `json:"transfer_reference,omitempty"`
}

// PostSaleInput is the full cart submitted for posting. Payments accepts
// either explicit entries or the legacy single payment-method field, which
// is expanded into one entry for the whole total.
type PostSaleInput struct {
	Items                    []ItemInput          `json:"items" validate:"required,min=1,dive"`
	Payments                 []PaymentInput       `json:"payments" validate:"dive"`
	LegacyPaymentMethod      *enums.PaymentMethod `json:"payment_method,omitempty"`
	CustomerID               *uuid.UUID           `json:"customer_id,omitempty"`
	CartDiscountType         *enums.DiscountType  `json:"discount_type,omitempty"`
	CartDiscountValue        *decimal.Decimal     `json:"discount_value,omitempty"`
	LegacyCartDiscountAmount *decimal.Decimal     `json:"discount_amount,omitempty"`
}

// ListParams filters the sales listing.
type ListParams struct {
	Limit  int
	Cursor string
}
