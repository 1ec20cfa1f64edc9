package numbering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:numbering_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.DocumentCounter{}); err != nil {
		t.Fatalf("migrate counters: %v", err)
	}
	return db
}

func TestNextNumberSequence(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seq := NewSequencer()
	tenant := uuid.New()

	want := []string{"SALE-000001", "SALE-000002", "SALE-000003"}
	for _, expected := range want {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := seq.NextNumber(ctx, tx, tenant, "SALE")
			got = n
			return err
		})
		if err != nil {
			t.Fatalf("next number: %v", err)
		}
		if got != expected {
			t.Fatalf("got %s, want %s", got, expected)
		}
	}
}

func TestNextNumberIsolatedPerTenantAndSeries(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seq := NewSequencer()
	tenantA := uuid.New()
	tenantB := uuid.New()

	next := func(tenant uuid.UUID, series string) string {
		var got string
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := seq.NextNumber(ctx, tx, tenant, series)
			got = n
			return err
		})
		if err != nil {
			t.Fatalf("next number: %v", err)
		}
		return got
	}

	if n := next(tenantA, "SALE"); n != "SALE-000001" {
		t.Fatalf("tenant A first sale number: %s", n)
	}
	if n := next(tenantA, "SALE"); n != "SALE-000002" {
		t.Fatalf("tenant A second sale number: %s", n)
	}
	// Another tenant starts its own sequence from one.
	if n := next(tenantB, "SALE"); n != "SALE-000001" {
		t.Fatalf("tenant B sale number: %s", n)
	}
	// A different series under the same tenant does too.
	if n := next(tenantA, "QUOTE"); n != "QUOTE-000001" {
		t.Fatalf("tenant A quote number: %s", n)
	}
}

func TestNextNumberRollbackReleasesNumber(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seq := NewSequencer()
	tenant := uuid.New()

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin: %v", tx.Error)
	}
	if _, err := seq.NextNumber(ctx, tx, tenant, "SALE"); err != nil {
		t.Fatalf("next number: %v", err)
	}
	tx.Rollback()

	var got string
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := seq.NextNumber(ctx, tx, tenant, "SALE")
		got = n
		return err
	})
	if err != nil {
		t.Fatalf("next number after rollback: %v", err)
	}
	if got != "SALE-000001" {
		t.Fatalf("rolled-back reservation was not released, got %s", got)
	}
}
