package registers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

func newTestClient(t *testing.T) *dbpkg.Client {
	t.Helper()
	dsn := "file:registers_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Location{},
		&models.RegisterSession{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbpkg.NewWithConn(conn, 5*time.Second)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedLocation(t *testing.T, client *dbpkg.Client, tenant uuid.UUID, name string, isDefault bool) models.Location {
	t.Helper()
	location := models.Location{
		ID:        uuid.New(),
		TenantID:  tenant,
		Name:      name,
		IsDefault: isDefault,
		IsActive:  true,
	}
	if err := client.DB().Create(&location).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return location
}

func seedCashSale(t *testing.T, client *dbpkg.Client, tenant uuid.UUID, session models.RegisterSession, cashAmount string) {
	t.Helper()
	sale := models.Sale{
		ID:                uuid.New(),
		Number:            "SALE-" + uuid.NewString()[:6],
		TenantID:          tenant,
		LocationID:        session.LocationID,
		OperatorID:        session.OperatorID,
		RegisterSessionID: session.ID,
		Subtotal:          dec(cashAmount),
		Total:             dec(cashAmount),
		Status:            enums.SaleStatusCompleted,
		Payments: []models.Payment{
			{ID: uuid.New(), Method: enums.PaymentMethodCash, Amount: dec(cashAmount)},
		},
	}
	if err := client.DB().Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func TestOpenUsesDefaultLocation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)
	tenant := uuid.New()
	seedLocation(t, client, tenant, "Sucursal Centro", false)
	main := seedLocation(t, client, tenant, "Casa Central", true)

	session, err := svc.Open(ctx, OpenInput{
		TenantID:       tenant,
		OperatorID:     uuid.New(),
		OpeningBalance: dec("500"),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if session.LocationID != main.ID {
		t.Fatalf("session location = %s, want default %s", session.LocationID, main.ID)
	}
	if session.Status != enums.RegisterStatusOpen {
		t.Fatalf("status = %s", session.Status)
	}
	if !session.OpeningBalance.Equal(dec("500")) {
		t.Fatalf("opening balance = %s", session.OpeningBalance)
	}
}

func TestOpenWithoutLocations(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)

	_, err := svc.Open(ctx, OpenInput{TenantID: uuid.New(), OperatorID: uuid.New(), OpeningBalance: decimal.Zero})
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeNoLocation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenTwiceSameLocation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)
	tenant := uuid.New()
	seedLocation(t, client, tenant, "Casa Central", true)

	if _, err := svc.Open(ctx, OpenInput{TenantID: tenant, OperatorID: uuid.New(), OpeningBalance: decimal.Zero}); err != nil {
		t.Fatalf("first open: %v", err)
	}
	_, err := svc.Open(ctx, OpenInput{TenantID: tenant, OperatorID: uuid.New(), OpeningBalance: decimal.Zero})
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeStateConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCloseReconcilesCash(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)
	tenant := uuid.New()
	seedLocation(t, client, tenant, "Casa Central", true)

	session, err := svc.Open(ctx, OpenInput{TenantID: tenant, OperatorID: uuid.New(), OpeningBalance: dec("1000")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seedCashSale(t, client, tenant, *session, "250")
	seedCashSale(t, client, tenant, *session, "130.50")

	// Operator counts 1375: expected is 1380.50, drawer is short 5.50.
	closed, err := svc.Close(ctx, CloseInput{
		TenantID:       tenant,
		SessionID:      session.ID,
		OperatorID:     session.OperatorID,
		ClosingBalance: dec("1375"),
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != enums.RegisterStatusClosed {
		t.Fatalf("status = %s", closed.Status)
	}
	if closed.ExpectedBalance == nil || !closed.ExpectedBalance.Equal(dec("1380.50")) {
		t.Fatalf("expected balance = %v", closed.ExpectedBalance)
	}
	if closed.Difference == nil || !closed.Difference.Equal(dec("-5.50")) {
		t.Fatalf("difference = %v", closed.Difference)
	}
	if closed.ClosedAt == nil {
		t.Fatal("closed_at not set")
	}
}

func TestCloseAlreadyClosed(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)
	tenant := uuid.New()
	seedLocation(t, client, tenant, "Casa Central", true)

	session, err := svc.Open(ctx, OpenInput{TenantID: tenant, OperatorID: uuid.New(), OpeningBalance: decimal.Zero})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.Close(ctx, CloseInput{TenantID: tenant, SessionID: session.ID, ClosingBalance: decimal.Zero}); err != nil {
		t.Fatalf("first close: %v", err)
	}
	_, err = svc.Close(ctx, CloseInput{TenantID: tenant, SessionID: session.ID, ClosingBalance: decimal.Zero})
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeStateConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveOpenFallsBackTenantWide(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)
	tenant := uuid.New()
	center := seedLocation(t, client, tenant, "Centro", true)
	annex := seedLocation(t, client, tenant, "Anexo", false)

	opened, err := svc.Open(ctx, OpenInput{
		TenantID:       tenant,
		OperatorID:     uuid.New(),
		LocationID:     &annex.ID,
		OpeningBalance: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// The default location has no session, so the sale adopts the open
	// session at the annex.
	err = client.DB().Transaction(func(tx *gorm.DB) error {
		session, err := svc.ResolveOpen(ctx, tx, tenant, nil)
		if err != nil {
			return err
		}
		if session.ID != opened.ID {
			t.Fatalf("resolved session %s, want %s", session.ID, opened.ID)
		}
		if session.LocationID != annex.ID {
			t.Fatalf("resolved location %s, want annex %s", session.LocationID, annex.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	_ = center
}

func TestResolveOpenNoSession(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	svc := NewService(client)
	tenant := uuid.New()
	seedLocation(t, client, tenant, "Centro", true)

	err := client.DB().Transaction(func(tx *gorm.DB) error {
		_, err := svc.ResolveOpen(ctx, tx, tenant, nil)
		return err
	})
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeNoOpenRegister {
		t.Fatalf("unexpected error: %v", err)
	}
}
