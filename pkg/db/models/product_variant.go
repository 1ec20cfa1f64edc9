package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a sellable variation of a product (size, color) with
// its own stock rows and optional price overrides.
type ProductVariant struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index"`
	TenantID  uuid.UUID        `gorm:"column:tenant_id;type:uuid;not null;index"`
	SKU       string           `gorm:"column:sku;not null"`
	Name      string           `gorm:"column:name;not null"`
	CostPrice *decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2)"`
	SalePrice *decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	IsActive  bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
