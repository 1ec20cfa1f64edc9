package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. SalePrice is tax-inclusive.
type Product struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID        `gorm:"column:tenant_id;type:uuid;not null;index"`
	SKU       string           `gorm:"column:sku;not null"`
	Name      string           `gorm:"column:name;not null"`
	CostPrice decimal.Decimal  `gorm:"column:cost_price;type:numeric(12,2);not null;default:0"`
	SalePrice decimal.Decimal  `gorm:"column:sale_price;type:numeric(12,2);not null;default:0"`
	TaxRate   decimal.Decimal  `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`
	IsActive  bool             `gorm:"column:is_active;not null;default:true"`
	Variants  []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
