package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
)

// mockDirectory serves canned Keycloak users
type mockDirectory struct {
	users []auth.KeycloakUser
	err   error
}

func (m *mockDirectory) GetUsersWithRole(roleName string) ([]auth.KeycloakUser, error) {
	return m.users, m.err
}

// mockNameLister serves canned fallback names
type mockNameLister struct {
	names []string
	err   error
}

func (m *mockNameLister) ListNames(ctx context.Context) ([]string, error) {
	return m.names, m.err
}

func TestService_ListDoctors_FromDirectory(t *testing.T) {
	directory := &mockDirectory{
		users: []auth.KeycloakUser{
			{Username: "dr.chi", FirstName: "Chi", LastName: "Nguyen", Email: "chi@clinic.test", Enabled: true},
			{Username: "dr.minh", FirstName: "", LastName: "", Enabled: true},
			{Username: "dr.left", FirstName: "Left", LastName: "Clinic", Enabled: false},
		},
	}
	service := NewService(directory, &mockNameLister{})

	doctors, err := service.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("Expected 2 enabled doctors, got %d", len(doctors))
	}
	if doctors[0].FullName != "Chi Nguyen" {
		t.Errorf("Expected full name 'Chi Nguyen', got '%s'", doctors[0].FullName)
	}
	// no first/last name falls back to username
	if doctors[1].FullName != "dr.minh" {
		t.Errorf("Expected full name 'dr.minh', got '%s'", doctors[1].FullName)
	}
}

func TestService_ListDoctors_FallsBackToLocalNames(t *testing.T) {
	directory := &mockDirectory{err: errors.New("keycloak unreachable")}
	fallback := &mockNameLister{names: []string{"dr.chi", "dr.minh"}}
	service := NewService(directory, fallback)

	doctors, err := service.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doctors) != 2 || doctors[0].Username != "dr.chi" {
		t.Errorf("Expected fallback names, got %+v", doctors)
	}
}

func TestService_ListDoctors_NoSources(t *testing.T) {
	service := NewService(nil, nil)

	doctors, err := service.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doctors) != 0 {
		t.Errorf("Expected empty directory, got %+v", doctors)
	}
}
