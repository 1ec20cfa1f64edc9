package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// Sale is an immutable-once-committed record of one completed transaction.
// Subtotal and TaxAmount are derived from tax-inclusive line totals; Total
// equals Subtotal + TaxAmount after the cart discount is applied.
type Sale struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number            string              `gorm:"column:number;not null"`
	TenantID          uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index"`
	LocationID        uuid.UUID           `gorm:"column:location_id;type:uuid;not null"`
	OperatorID        uuid.UUID           `gorm:"column:operator_id;type:uuid;not null"`
	CustomerID        *uuid.UUID          `gorm:"column:customer_id;type:uuid"`
	RegisterSessionID uuid.UUID           `gorm:"column:register_session_id;type:uuid;not null"`
	Subtotal          decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TaxAmount         decimal.Decimal     `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	DiscountType      *enums.DiscountType `gorm:"column:discount_type;type:text"`
	DiscountValue     *decimal.Decimal    `gorm:"column:discount_value;type:numeric(12,2)"`
	DiscountAmount    decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	Total             decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	Status            enums.SaleStatus    `gorm:"column:status;type:text;not null;default:'completed'"`
	Items             []SaleItem          `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Payments          []Payment           `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
