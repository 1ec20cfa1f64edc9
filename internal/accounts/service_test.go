package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:accounts_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.CustomerAccount{}, &models.CustomerAccountMovement{}); err != nil {
		t.Fatalf("migrate accounts: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func charge(t *testing.T, db *gorm.DB, svc *Service, tenant, customer uuid.UUID, amount string) error {
	t.Helper()
	return db.Transaction(func(tx *gorm.DB) error {
		return svc.Charge(context.Background(), tx, tenant, customer, uuid.New(), "SALE-000001", dec(amount))
	})
}

func loadAccount(t *testing.T, db *gorm.DB, customer uuid.UUID) models.CustomerAccount {
	t.Helper()
	var account models.CustomerAccount
	if err := db.Where("customer_id = ?", customer).First(&account).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	return account
}

func TestChargeCreatesAccountOnFirstUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService()
	tenant, customer := uuid.New(), uuid.New()

	if err := charge(t, db, svc, tenant, customer, "150"); err != nil {
		t.Fatalf("charge: %v", err)
	}

	account := loadAccount(t, db, customer)
	if !account.Balance.Equal(dec("-150")) {
		t.Fatalf("balance = %s, want -150", account.Balance)
	}
	if !account.IsActive {
		t.Fatal("account should be active")
	}

	var movement models.CustomerAccountMovement
	if err := db.Where("account_id = ?", account.ID).First(&movement).Error; err != nil {
		t.Fatalf("load movement: %v", err)
	}
	if movement.Type != enums.AccountMovementCharge {
		t.Fatalf("movement type = %s", movement.Type)
	}
	if !movement.Amount.Equal(dec("-150")) {
		t.Fatalf("movement amount = %s", movement.Amount)
	}
	if !movement.BalanceBefore.IsZero() || !movement.BalanceAfter.Equal(dec("-150")) {
		t.Fatalf("snapshots = %s / %s", movement.BalanceBefore, movement.BalanceAfter)
	}
	if movement.Concept != "sale SALE-000001" {
		t.Fatalf("concept = %q", movement.Concept)
	}
}

func TestChargeAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := NewService()
	tenant, customer := uuid.New(), uuid.New()

	if err := charge(t, db, svc, tenant, customer, "100"); err != nil {
		t.Fatalf("first charge: %v", err)
	}
	if err := charge(t, db, svc, tenant, customer, "50.50"); err != nil {
		t.Fatalf("second charge: %v", err)
	}

	account := loadAccount(t, db, customer)
	if !account.Balance.Equal(dec("-150.50")) {
		t.Fatalf("balance = %s, want -150.50", account.Balance)
	}

	var count int64
	if err := db.Model(&models.CustomerAccountMovement{}).Where("account_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if count != 2 {
		t.Fatalf("movements = %d, want 2", count)
	}
}

func TestChargeInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewService()
	tenant, customer := uuid.New(), uuid.New()
	seed := models.CustomerAccount{
		ID:         uuid.New(),
		TenantID:   tenant,
		CustomerID: customer,
		IsActive:   false,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}

	err := charge(t, db, svc, tenant, customer, "10")
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeAccountInactive {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChargeCreditLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewService()
	tenant, customer := uuid.New(), uuid.New()
	// Owes 150 already against a 200 limit: 50 of credit remains.
	seed := models.CustomerAccount{
		ID:          uuid.New(),
		TenantID:    tenant,
		CustomerID:  customer,
		Balance:     dec("-150"),
		CreditLimit: dec("200"),
		IsActive:    true,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}

	err := charge(t, db, svc, tenant, customer, "80")
	typed := apperrors.As(err)
	if typed == nil || typed.Code() != apperrors.CodeCreditLimitExceeded {
		t.Fatalf("unexpected error: %v", err)
	}
	details, ok := typed.Details().(CreditLimitDetails)
	if !ok {
		t.Fatalf("unexpected details: %#v", typed.Details())
	}
	if !details.AvailableCredit.Equal(dec("50")) {
		t.Fatalf("available credit = %s, want 50", details.AvailableCredit)
	}

	// The remaining 50 still goes through, exactly to the limit.
	if err := charge(t, db, svc, tenant, customer, "50"); err != nil {
		t.Fatalf("charge to limit: %v", err)
	}
	account := loadAccount(t, db, customer)
	if !account.Balance.Equal(dec("-200")) {
		t.Fatalf("balance = %s, want -200", account.Balance)
	}
}

func TestChargeZeroLimitIsUnlimited(t *testing.T) {
	db := newTestDB(t)
	svc := NewService()
	tenant, customer := uuid.New(), uuid.New()

	if err := charge(t, db, svc, tenant, customer, "100000"); err != nil {
		t.Fatalf("charge: %v", err)
	}
	account := loadAccount(t, db, customer)
	if !account.Balance.Equal(dec("-100000")) {
		t.Fatalf("balance = %s", account.Balance)
	}
}

func TestChargeRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewService()

	err := charge(t, db, svc, uuid.New(), uuid.New(), "0")
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}
