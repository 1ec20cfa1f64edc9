package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerAccount holds one running receivable balance per customer.
// Positive balance means the customer has credit with the business,
// negative means the customer owes money. CreditLimit 0 means unlimited.
type CustomerAccount struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	CustomerID  uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;uniqueIndex"`
	Balance     decimal.Decimal `gorm:"column:balance;type:numeric(12,2);not null;default:0"`
	CreditLimit decimal.Decimal `gorm:"column:credit_limit;type:numeric(12,2);not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
