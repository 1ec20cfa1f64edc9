package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashAccount is a treasury account: a bank, POS-terminal settlement or
// similar non-physical-cash destination for a payment method's proceeds.
type CashAccount struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name           string          `gorm:"column:name;not null"`
	CurrentBalance decimal.Decimal `gorm:"column:current_balance;type:numeric(12,2);not null;default:0"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
