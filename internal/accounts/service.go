package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Service maintains customer receivable accounts. A sale paid "on account"
// charges the customer's balance; the balance plus its movement ledger are
// updated together inside the sale's transaction.
type Service struct{}

// NewService returns a Service.
func NewService() *Service {
	return &Service{}
}

// CreditLimitDetails is attached to credit-limit errors so the caller can
// tell the operator how much room the customer has left.
type CreditLimitDetails struct {
	Requested       decimal.Decimal `json:"requested"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
}

// Charge debits a customer's account by amount for a sale. The account is
// created on first use with zero balance and no credit limit. A limit of
// zero means unlimited credit; a positive limit rejects charges that would
// push the balance below its negative.
func (s *Service) Charge(ctx context.Context, tx *gorm.DB, tenantID, customerID, saleID uuid.UUID, saleNumber string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.New(apperrors.CodeValidation, "account charge amount must be positive")
	}

	account, err := s.lockOrCreate(ctx, tx, tenantID, customerID)
	if err != nil {
		return err
	}

	if !account.IsActive {
		return apperrors.New(apperrors.CodeAccountInactive, "customer account is inactive")
	}

	newBalance := account.Balance.Sub(amount)
	if account.CreditLimit.GreaterThan(decimal.Zero) && newBalance.LessThan(account.CreditLimit.Neg()) {
		available := account.CreditLimit.Add(account.Balance)
		if available.IsNegative() {
			available = decimal.Zero
		}
		return apperrors.New(
			apperrors.CodeCreditLimitExceeded,
			fmt.Sprintf("credit limit exceeded: available credit %s, requested %s", available.StringFixed(2), amount.StringFixed(2)),
		).WithDetails(CreditLimitDetails{
			Requested:       amount,
			AvailableCredit: available,
			CreditLimit:     account.CreditLimit,
		})
	}

	err = tx.WithContext(ctx).
		Model(&models.CustomerAccount{}).
		Where("id = ?", account.ID).
		Update("balance", newBalance).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to update account balance")
	}

	movement := models.CustomerAccountMovement{
		AccountID:     account.ID,
		Type:          enums.AccountMovementCharge,
		Amount:        amount.Neg(),
		Concept:       fmt.Sprintf("sale %s", saleNumber),
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		SaleID:        &saleID,
	}
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to record account movement")
	}
	return nil
}

func (s *Service) lockOrCreate(ctx context.Context, tx *gorm.DB, tenantID, customerID uuid.UUID) (*models.CustomerAccount, error) {
	var account models.CustomerAccount
	err := db.LockForUpdate(tx.WithContext(ctx)).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock customer account")
	}

	account = models.CustomerAccount{
		ID:          uuid.New(),
		TenantID:    tenantID,
		CustomerID:  customerID,
		Balance:     decimal.Zero,
		CreditLimit: decimal.Zero,
		IsActive:    true,
	}
	if err := tx.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to create customer account")
	}
	return &account, nil
}
