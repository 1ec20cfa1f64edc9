package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// RegisterSession is one open→close working period of a cash drawer.
// ExpectedBalance and Difference are computed at close time from the cash
// tenders of the sales posted during the session.
type RegisterSession struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID        uuid.UUID            `gorm:"column:tenant_id;type:uuid;not null;index"`
	LocationID      uuid.UUID            `gorm:"column:location_id;type:uuid;not null;index"`
	OperatorID      uuid.UUID            `gorm:"column:operator_id;type:uuid;not null"`
	Status          enums.RegisterStatus `gorm:"column:status;type:text;not null;default:'open'"`
	OpeningBalance  decimal.Decimal      `gorm:"column:opening_balance;type:numeric(12,2);not null;default:0"`
	ClosingBalance  *decimal.Decimal     `gorm:"column:closing_balance;type:numeric(12,2)"`
	ExpectedBalance *decimal.Decimal     `gorm:"column:expected_balance;type:numeric(12,2)"`
	Difference      *decimal.Decimal     `gorm:"column:difference;type:numeric(12,2)"`
	OpenedAt        time.Time            `gorm:"column:opened_at;autoCreateTime"`
	ClosedAt        *time.Time           `gorm:"column:closed_at"`
}
