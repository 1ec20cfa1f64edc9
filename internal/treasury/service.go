package treasury

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Service routes non-cash sale proceeds to treasury cash accounts. Cash
// tenders never reach treasury: the physical drawer is reconciled through
// register sessions instead.
type Service struct {
	cache *MappingCache
}

// NewService returns a Service. The cache may be nil.
func NewService(cache *MappingCache) *Service {
	return &Service{cache: cache}
}

// RecordSaleIncome posts one treasury movement per payment whose method
// settles on a cash account. Methods without a configured mapping are
// skipped: a tenant that never set up card routing still sells fine, the
// proceeds just aren't tracked in treasury.
func (s *Service) RecordSaleIncome(ctx context.Context, tx *gorm.DB, tenantID, saleID uuid.UUID, saleNumber string, payments []models.Payment) error {
	for _, payment := range payments {
		if !payment.Method.PostsToTreasury() {
			continue
		}

		accountID, found, err := s.resolveMapping(ctx, tx, tenantID, payment.Method)
		if err != nil {
			return err
		}
		if !found {
			continue
		}

		if err := s.postIncome(ctx, tx, accountID, saleID, saleNumber, payment); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) resolveMapping(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, method enums.PaymentMethod) (uuid.UUID, bool, error) {
	if accountID, ok := s.cache.Get(ctx, tenantID, method); ok {
		return accountID, true, nil
	}

	var mapping models.CashAccountMapping
	err := tx.WithContext(ctx).
		Where("tenant_id = ? AND method = ?", tenantID, method).
		First(&mapping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, apperrors.Wrap(apperrors.CodeInternal, err, "failed to resolve treasury mapping")
	}

	s.cache.Put(ctx, tenantID, method, mapping.CashAccountID)
	return mapping.CashAccountID, true, nil
}

func (s *Service) postIncome(ctx context.Context, tx *gorm.DB, accountID, saleID uuid.UUID, saleNumber string, payment models.Payment) error {
	var account models.CashAccount
	err := db.LockForUpdate(tx.WithContext(ctx)).
		Where("id = ?", accountID).
		First(&account).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock cash account")
	}

	newBalance := account.CurrentBalance.Add(payment.Amount)
	err = tx.WithContext(ctx).
		Model(&models.CashAccount{}).
		Where("id = ?", account.ID).
		Update("current_balance", newBalance).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to update cash account balance")
	}

	movement := models.CashAccountMovement{
		CashAccountID: account.ID,
		Type:          enums.CashMovementSaleIncome,
		Amount:        payment.Amount,
		Concept:       fmt.Sprintf("sale %s (%s)", saleNumber, payment.Method),
		BalanceBefore: account.CurrentBalance,
		BalanceAfter:  newBalance,
		SaleID:        &saleID,
	}
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to record treasury movement")
	}
	return nil
}
