package registers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Service manages register sessions, the open→close working periods of a
// cash drawer. Sales can only post while a session is open; closing a
// session reconciles the declared drawer count against the cash the
// session's sales should have produced.
type Service struct {
	db *db.Client
}

// NewService returns a Service.
func NewService(client *db.Client) *Service {
	return &Service{db: client}
}

// OpenInput describes a register opening.
type OpenInput struct {
	TenantID       uuid.UUID
	OperatorID     uuid.UUID
	LocationID     *uuid.UUID
	OpeningBalance decimal.Decimal
}

// CloseInput describes a register closing with the operator's counted
// drawer balance.
type CloseInput struct {
	TenantID       uuid.UUID
	SessionID      uuid.UUID
	OperatorID     uuid.UUID
	ClosingBalance decimal.Decimal
}

// Open starts a session at a location. When no location is given the
// tenant's default location is used. At most one session per location can
// be open at a time.
func (s *Service) Open(ctx context.Context, in OpenInput) (*models.RegisterSession, error) {
	if in.OpeningBalance.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "opening balance cannot be negative")
	}

	var session models.RegisterSession
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		location, err := resolveLocation(ctx, tx, in.TenantID, in.LocationID)
		if err != nil {
			return err
		}

		var existing models.RegisterSession
		err = tx.WithContext(ctx).
			Where("tenant_id = ? AND location_id = ? AND status = ?", in.TenantID, location.ID, enums.RegisterStatusOpen).
			First(&existing).Error
		if err == nil {
			return apperrors.New(apperrors.CodeStateConflict, "a register session is already open at this location")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.CodeInternal, err, "failed to check open sessions")
		}

		session = models.RegisterSession{
			ID:             uuid.New(),
			TenantID:       in.TenantID,
			LocationID:     location.ID,
			OperatorID:     in.OperatorID,
			Status:         enums.RegisterStatusOpen,
			OpeningBalance: in.OpeningBalance,
			OpenedAt:       time.Now().UTC(),
		}
		if err := tx.WithContext(ctx).Create(&session).Error; err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "failed to open register session")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Close ends a session. The expected balance is the opening balance plus
// all cash tenders posted during the session; the difference records how
// far off the operator's count was.
func (s *Service) Close(ctx context.Context, in CloseInput) (*models.RegisterSession, error) {
	var session models.RegisterSession
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		err := db.LockForUpdate(tx.WithContext(ctx)).
			Where("id = ? AND tenant_id = ?", in.SessionID, in.TenantID).
			First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "register session not found")
		}
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock register session")
		}
		if session.Status != enums.RegisterStatusOpen {
			return apperrors.New(apperrors.CodeStateConflict, "register session is already closed")
		}

		cashTotal, err := sessionCashTotal(ctx, tx, session.ID)
		if err != nil {
			return err
		}

		expected := session.OpeningBalance.Add(cashTotal)
		difference := in.ClosingBalance.Sub(expected)
		closedAt := time.Now().UTC()

		updates := map[string]any{
			"status":           enums.RegisterStatusClosed,
			"closing_balance":  in.ClosingBalance,
			"expected_balance": expected,
			"difference":       difference,
			"closed_at":        closedAt,
		}
		err = tx.WithContext(ctx).
			Model(&models.RegisterSession{}).
			Where("id = ?", session.ID).
			Updates(updates).Error
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "failed to close register session")
		}

		session.Status = enums.RegisterStatusClosed
		session.ClosingBalance = &in.ClosingBalance
		session.ExpectedBalance = &expected
		session.Difference = &difference
		session.ClosedAt = &closedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ResolveOpen finds the session a sale should post against. The requested
// location (or the tenant's default) is tried first; failing that, any
// open session of the tenant is adopted, location included. Runs inside
// the caller's transaction.
func (s *Service) ResolveOpen(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, locationID *uuid.UUID) (*models.RegisterSession, error) {
	location, err := resolveLocation(ctx, tx, tenantID, locationID)
	if err != nil {
		return nil, err
	}

	var session models.RegisterSession
	err = tx.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ? AND status = ?", tenantID, location.ID, enums.RegisterStatusOpen).
		First(&session).Error
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to look up register session")
	}

	err = tx.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, enums.RegisterStatusOpen).
		Order("opened_at ASC").
		First(&session).Error
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to look up register session")
	}
	return nil, apperrors.New(apperrors.CodeNoOpenRegister, "no open register session")
}

func resolveLocation(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, locationID *uuid.UUID) (*models.Location, error) {
	var location models.Location
	query := tx.WithContext(ctx).Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if locationID != nil {
		query = query.Where("id = ?", *locationID)
	} else {
		query = query.Order("is_default DESC, created_at ASC")
	}

	err := query.First(&location).Error
	if err == nil {
		return &location, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to resolve location")
	}
	if locationID != nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "location not found")
	}
	return nil, apperrors.New(apperrors.CodeNoLocation, "tenant has no configured location")
}

func sessionCashTotal(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	var raw decimal.Decimal
	err := tx.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(payments.amount), 0)").
		Joins("JOIN sales ON sales.id = payments.sale_id").
		Where("sales.register_session_id = ? AND payments.method = ?", sessionID, enums.PaymentMethodCash).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.CodeInternal, err, "failed to sum session cash")
	}
	return raw, nil
}
