package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// CashAccountMovement is an append-only treasury ledger entry with balance
// snapshots taken at posting time.
type CashAccountMovement struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CashAccountID uuid.UUID              `gorm:"column:cash_account_id;type:uuid;not null;index"`
	Type          enums.CashMovementType `gorm:"column:type;type:text;not null"`
	Amount        decimal.Decimal        `gorm:"column:amount;type:numeric(12,2);not null"`
	Concept       string                 `gorm:"column:concept;not null"`
	BalanceBefore decimal.Decimal        `gorm:"column:balance_before;type:numeric(12,2);not null"`
	BalanceAfter  decimal.Decimal        `gorm:"column:balance_after;type:numeric(12,2);not null"`
	SaleID        *uuid.UUID             `gorm:"column:sale_id;type:uuid"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
}
