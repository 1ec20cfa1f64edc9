package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// CustomerAccountMovement is an append-only receivable ledger entry with
// balance snapshots taken at posting time.
type CustomerAccountMovement struct {
	ID            uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID     uuid.UUID                 `gorm:"column:account_id;type:uuid;not null;index"`
	Type          enums.AccountMovementType `gorm:"column:type;type:text;not null"`
	Amount        decimal.Decimal           `gorm:"column:amount;type:numeric(12,2);not null"`
	Concept       string                    `gorm:"column:concept;not null"`
	BalanceBefore decimal.Decimal           `gorm:"column:balance_before;type:numeric(12,2);not null"`
	BalanceAfter  decimal.Decimal           `gorm:"column:balance_after;type:numeric(12,2);not null"`
	SaleID        *uuid.UUID                `gorm:"column:sale_id;type:uuid"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
