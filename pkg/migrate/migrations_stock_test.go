package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStockLedgerMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_stock_ledger.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no stock ledger migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS stock_items",
		"CREATE TABLE IF NOT EXISTS stock_movements",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"quantity_before INTEGER NOT NULL",
		"quantity_after INTEGER NOT NULL",
		"DROP TABLE IF EXISTS stock_movements",
		"DROP TABLE IF EXISTS stock_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
