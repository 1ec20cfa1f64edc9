package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// Payment is one tender entry applied toward a sale's total.
type Payment struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID            uuid.UUID           `gorm:"column:sale_id;type:uuid;not null;index"`
	Method            enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	Amount            decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	CardLastFour      *string             `gorm:"column:card_last_four;type:varchar(4)"`
	TransferReference *string             `gorm:"column:transfer_reference"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
}
