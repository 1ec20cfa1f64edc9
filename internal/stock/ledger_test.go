package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.StockItem{}, &models.StockMovement{}); err != nil {
		t.Fatalf("migrate stock: %v", err)
	}
	return db
}

func seedStock(t *testing.T, db *gorm.DB, tenantID, locationID uuid.UUID, item ItemRef, qty int) {
	t.Helper()
	row := models.StockItem{
		ID:               uuid.New(),
		TenantID:         tenantID,
		LocationID:       locationID,
		ProductID:        item.ProductID(),
		ProductVariantID: item.VariantID(),
		Quantity:         qty,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func stockQuantity(t *testing.T, db *gorm.DB, item ItemRef) int {
	t.Helper()
	var row models.StockItem
	query := db.Model(&models.StockItem{})
	if item.Kind() == ItemKindVariant {
		query = query.Where("product_variant_id = ?", item.ID())
	} else {
		query = query.Where("product_id = ?", item.ID())
	}
	if err := query.First(&row).Error; err != nil {
		t.Fatalf("load stock row: %v", err)
	}
	return row.Quantity
}

func TestReserveDecrements(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledger := NewLedger()
	tenant, location := uuid.New(), uuid.New()
	item := ProductRef(uuid.New(), "Yerba 1kg")
	seedStock(t, db, tenant, location, item, 10)

	var draft MovementDraft
	err := db.Transaction(func(tx *gorm.DB) error {
		d, err := ledger.Reserve(ctx, tx, tenant, location, item, 3)
		draft = d
		return err
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if draft.Before != 10 || draft.After != 7 || draft.Quantity != 3 {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if got := stockQuantity(t, db, item); got != 7 {
		t.Fatalf("stock after reserve = %d, want 7", got)
	}
}

func TestReserveInsufficient(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledger := NewLedger()
	tenant, location := uuid.New(), uuid.New()
	item := ProductRef(uuid.New(), "Yerba 1kg")
	seedStock(t, db, tenant, location, item, 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Reserve(ctx, tx, tenant, location, item, 5)
		return err
	})
	typed := apperrors.As(err)
	if typed == nil || typed.Code() != apperrors.CodeInsufficientStock {
		t.Fatalf("unexpected error: %v", err)
	}
	details, ok := typed.Details().(InsufficientStockDetails)
	if !ok {
		t.Fatalf("unexpected details: %#v", typed.Details())
	}
	if details.Item != "Yerba 1kg" || details.Requested != 5 || details.Available != 2 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if got := stockQuantity(t, db, item); got != 2 {
		t.Fatalf("stock changed on failed reserve: %d", got)
	}
}

func TestReserveMissingRowCountsAsZero(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledger := NewLedger()

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Reserve(ctx, tx, uuid.New(), uuid.New(), ProductRef(uuid.New(), "Ghost"), 1)
		return err
	})
	typed := apperrors.As(err)
	if typed == nil || typed.Code() != apperrors.CodeInsufficientStock {
		t.Fatalf("unexpected error: %v", err)
	}
	details := typed.Details().(InsufficientStockDetails)
	if details.Available != 0 {
		t.Fatalf("available = %d, want 0", details.Available)
	}
}

func TestReserveVariantDoesNotTouchProductRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledger := NewLedger()
	tenant, location := uuid.New(), uuid.New()
	productID := uuid.New()
	product := ProductRef(productID, "Remera")
	variant := VariantRef(uuid.New(), "Remera M")
	seedStock(t, db, tenant, location, product, 8)
	seedStock(t, db, tenant, location, variant, 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := ledger.Reserve(ctx, tx, tenant, location, variant, 4)
		return err
	})
	if err != nil {
		t.Fatalf("reserve variant: %v", err)
	}
	if got := stockQuantity(t, db, variant); got != 0 {
		t.Fatalf("variant stock = %d, want 0", got)
	}
	if got := stockQuantity(t, db, product); got != 8 {
		t.Fatalf("product stock = %d, want 8", got)
	}
}

func TestRecordMovements(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledger := NewLedger()
	tenant, location, actor := uuid.New(), uuid.New(), uuid.New()
	saleID := uuid.New()
	item := ProductRef(uuid.New(), "Yerba 1kg")
	seedStock(t, db, tenant, location, item, 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		draft, err := ledger.Reserve(ctx, tx, tenant, location, item, 4)
		if err != nil {
			return err
		}
		return ledger.RecordMovements(ctx, tx, tenant, location, saleID, "SALE-000042", actor, []MovementDraft{draft})
	})
	if err != nil {
		t.Fatalf("reserve and record: %v", err)
	}

	var movement models.StockMovement
	if err := db.Where("sale_id = ?", saleID).First(&movement).Error; err != nil {
		t.Fatalf("load movement: %v", err)
	}
	if movement.Type != enums.StockMovementSale {
		t.Fatalf("movement type = %s", movement.Type)
	}
	if movement.Quantity != -4 || movement.QuantityBefore != 10 || movement.QuantityAfter != 6 {
		t.Fatalf("unexpected movement: %+v", movement)
	}
	if movement.Reason != "sale SALE-000042" {
		t.Fatalf("reason = %q", movement.Reason)
	}
	if movement.ActorID != actor {
		t.Fatalf("actor = %s", movement.ActorID)
	}
}

func TestRollbackRestoresStockAndDropsMovements(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledger := NewLedger()
	tenant, location, actor := uuid.New(), uuid.New(), uuid.New()
	first := ProductRef(uuid.New(), "Yerba 1kg")
	second := ProductRef(uuid.New(), "Azucar 1kg")
	seedStock(t, db, tenant, location, first, 10)
	seedStock(t, db, tenant, location, second, 1)

	saleID := uuid.New()
	err := db.Transaction(func(tx *gorm.DB) error {
		draft, err := ledger.Reserve(ctx, tx, tenant, location, first, 3)
		if err != nil {
			return err
		}
		if err := ledger.RecordMovements(ctx, tx, tenant, location, saleID, "SALE-000001", actor, []MovementDraft{draft}); err != nil {
			return err
		}
		// The second line runs out of stock, which aborts the whole
		// transaction.
		_, err = ledger.Reserve(ctx, tx, tenant, location, second, 5)
		return err
	})
	if typed := apperrors.As(err); typed == nil || typed.Code() != apperrors.CodeInsufficientStock {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stockQuantity(t, db, first); got != 10 {
		t.Fatalf("first item stock = %d, want 10 after rollback", got)
	}
	var count int64
	if err := db.Model(&models.StockMovement{}).Count(&count).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if count != 0 {
		t.Fatalf("movements survived rollback: %d", count)
	}
}
