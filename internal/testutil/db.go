package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB connects to the integration test database. Tests are skipped
// when TEST_DATABASE_URL is not set so the unit suite stays runnable without
// infrastructure.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}
	if _, err := db.Exec("SET TIME ZONE 'UTC'"); err != nil {
		t.Fatalf("Failed to set test database timezone: %v", err)
	}

	return db
}

// CleanupTestDB truncates all service tables so each test starts clean.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"carebridge.call_sessions",
		"carebridge.wallet_transactions",
		"carebridge.invoices",
		"carebridge.wallets",
		"carebridge.attendance_registrations",
		"carebridge.appointments",
	}
	for _, table := range tables {
		if _, err := db.Exec("TRUNCATE TABLE " + table + " CASCADE"); err != nil {
			t.Logf("Warning: failed to truncate %s: %v", table, err)
		}
	}
}
