package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sgiordano/ventapos-backend/pkg/migrate"
)

func TestSalesMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_sales.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no sales migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS document_counters",
		"PRIMARY KEY (tenant_id, series)",
		"CREATE TABLE IF NOT EXISTS sales",
		"CREATE TABLE IF NOT EXISTS sale_items",
		"CREATE TABLE IF NOT EXISTS payments",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_sales_tenant_number",
		"CREATE INDEX IF NOT EXISTS idx_sales_tenant_created",
		"FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAllMigrationsValidate(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations failed validation: %v", err)
	}
}
