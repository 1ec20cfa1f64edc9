package registers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// SessionDTO is the outward shape of a register session.
type SessionDTO struct {
	ID              uuid.UUID            `json:"id"`
	LocationID      uuid.UUID            `json:"location_id"`
	OperatorID      uuid.UUID            `json:"operator_id"`
	Status          enums.RegisterStatus `json:"status"`
	OpeningBalance  decimal.Decimal      `json:"opening_balance"`
	ClosingBalance  *decimal.Decimal     `json:"closing_balance,omitempty"`
	ExpectedBalance *decimal.Decimal     `json:"expected_balance,omitempty"`
	Difference      *decimal.Decimal     `json:"difference,omitempty"`
	OpenedAt        time.Time            `json:"opened_at"`
	ClosedAt        *time.Time           `json:"closed_at,omitempty"`
}

// NewSessionDTO maps a session row to its outward shape.
func NewSessionDTO(session *models.RegisterSession) *SessionDTO {
	if session == nil {
		return nil
	}
	return &SessionDTO{
		ID:              session.ID,
		LocationID:      session.LocationID,
		OperatorID:      session.OperatorID,
		Status:          session.Status,
		OpeningBalance:  session.OpeningBalance,
		ClosingBalance:  session.ClosingBalance,
		ExpectedBalance: session.ExpectedBalance,
		Difference:      session.Difference,
		OpenedAt:        session.OpenedAt,
		ClosedAt:        session.ClosedAt,
	}
}
