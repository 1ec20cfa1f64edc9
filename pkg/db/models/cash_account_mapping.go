package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// CashAccountMapping routes a payment method's proceeds to a treasury
// account. At most one mapping per (tenant, method); methods without a
// mapping simply don't post to treasury.
type CashAccountMapping struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index:idx_cash_mappings_tenant_method,unique"`
	Method        enums.PaymentMethod `gorm:"column:method;type:text;not null;index:idx_cash_mappings_tenant_method,unique"`
	CashAccountID uuid.UUID           `gorm:"column:cash_account_id;type:uuid;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
