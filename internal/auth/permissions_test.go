package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPermissions(t *testing.T) {
	content := `roles:
  ADMIN:
    - appointment:view
    - appointment:create
    - appointment:delete
    - wallet:manage
  DOCTOR:
    - appointment:view
    - appointment:create
    - attendance:register
  PATIENT:
    - appointment:view
    - wallet:view
`
	path := filepath.Join(t.TempDir(), "permissions.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write permissions file: %v", err)
	}

	perms, err := LoadPermissions(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(perms) != 3 {
		t.Errorf("Expected 3 roles, got %d", len(perms))
	}
	if len(perms["ADMIN"]) != 4 {
		t.Errorf("Expected 4 ADMIN permissions, got %d", len(perms["ADMIN"]))
	}

	doctor := &Principal{UserID: "u1", Roles: []string{"DOCTOR"}}
	if !HasPermission(doctor, "attendance:register", perms) {
		t.Error("Expected DOCTOR to have attendance:register")
	}
	if HasPermission(doctor, "wallet:manage", perms) {
		t.Error("Expected DOCTOR to not have wallet:manage")
	}
}

func TestLoadPermissions_FileNotFound(t *testing.T) {
	if _, err := LoadPermissions("/nonexistent/permissions.yml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadPermissions_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.yml")
	if err := os.WriteFile(path, []byte("roles: [not: valid"), 0o600); err != nil {
		t.Fatalf("Failed to write permissions file: %v", err)
	}
	if _, err := LoadPermissions(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
