package models

import (
	"time"

	"github.com/google/uuid"
)

// StockItem is the materialized quantity per (item, location). It caches the
// sum of the stock movement ledger and is only mutated alongside a ledger
// insert, inside the same transaction.
type StockItem struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID         uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	LocationID       uuid.UUID  `gorm:"column:location_id;type:uuid;not null;index"`
	ProductID        *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ProductVariantID *uuid.UUID `gorm:"column:product_variant_id;type:uuid"`
	Quantity         int        `gorm:"column:quantity;not null;default:0"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
