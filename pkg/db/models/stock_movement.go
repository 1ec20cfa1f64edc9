package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// StockMovement is an append-only stock ledger entry. Quantity is signed
// (negative for outbound). Before/after snapshots make the ledger
// independently auditable against the StockItem cache.
type StockMovement struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID         uuid.UUID               `gorm:"column:tenant_id;type:uuid;not null;index"`
	LocationID       uuid.UUID               `gorm:"column:location_id;type:uuid;not null"`
	ProductID        *uuid.UUID              `gorm:"column:product_id;type:uuid"`
	ProductVariantID *uuid.UUID              `gorm:"column:product_variant_id;type:uuid"`
	Type             enums.StockMovementType `gorm:"column:type;type:text;not null"`
	Quantity         int                     `gorm:"column:quantity;not null"`
	QuantityBefore   int                     `gorm:"column:quantity_before;not null"`
	QuantityAfter    int                     `gorm:"column:quantity_after;not null"`
	Reason           string                  `gorm:"column:reason;not null"`
	SaleID           *uuid.UUID              `gorm:"column:sale_id;type:uuid"`
	ActorID          uuid.UUID               `gorm:"column:actor_id;type:uuid;not null"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
}
