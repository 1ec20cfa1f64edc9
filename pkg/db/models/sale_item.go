package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// SaleItem is one line of a sale. Exactly one of ProductID/ProductVariantID
// is set. CostPrice is the snapshot taken at sale time for COGS reporting
// and is never re-derived from the current product cost.
type SaleItem struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID           uuid.UUID           `gorm:"column:sale_id;type:uuid;not null;index"`
	ProductID        *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	ProductVariantID *uuid.UUID          `gorm:"column:product_variant_id;type:uuid"`
	Description      string              `gorm:"column:description;not null"`
	Quantity         int                 `gorm:"column:quantity;not null"`
	UnitPrice        decimal.Decimal     `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CostPrice        decimal.Decimal     `gorm:"column:cost_price;type:numeric(12,2);not null"`
	TaxRate          decimal.Decimal     `gorm:"column:tax_rate;type:numeric(5,2);not null"`
	DiscountType     *enums.DiscountType `gorm:"column:discount_type;type:text"`
	DiscountValue    *decimal.Decimal    `gorm:"column:discount_value;type:numeric(12,2)"`
	DiscountAmount   decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	Subtotal         decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TaxAmount        decimal.Decimal     `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	Total            decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
}
