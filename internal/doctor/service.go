package doctor

import (
	"context"
	"log"
	"strings"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
)

// DoctorRole is the Keycloak realm role that marks a user as a doctor.
const DoctorRole = "DOCTOR"

// DirectoryInterface is the identity-provider lookup, satisfied by
// auth.KeycloakAdminClient.
type DirectoryInterface interface {
	GetUsersWithRole(roleName string) ([]auth.KeycloakUser, error)
}

// NameLister is the local fallback source of doctor names.
type NameLister interface {
	ListNames(ctx context.Context) ([]string, error)
}

type Service struct {
	directory DirectoryInterface
	fallback  NameLister
}

// NewService wires the doctor directory. Either source may be nil.
func NewService(directory DirectoryInterface, fallback NameLister) *Service {
	return &Service{directory: directory, fallback: fallback}
}

// ListDoctors returns the directory from the identity provider, falling back
// to doctor names seen on existing appointments when the provider is
// unavailable.
func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	if s.directory != nil {
		users, err := s.directory.GetUsersWithRole(DoctorRole)
		if err == nil {
			doctors := make([]Doctor, 0, len(users))
			for _, u := range users {
				if !u.Enabled {
					continue
				}
				doctors = append(doctors, Doctor{
					Username: u.Username,
					FullName: fullName(u),
					Email:    u.Email,
				})
			}
			return doctors, nil
		}
		log.Printf("[ERROR] Doctor directory lookup failed, using local fallback: %v", err)
	}

	if s.fallback == nil {
		return []Doctor{}, nil
	}

	names, err := s.fallback.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	doctors := make([]Doctor, 0, len(names))
	for _, name := range names {
		doctors = append(doctors, Doctor{Username: name, FullName: name})
	}
	return doctors, nil
}

func fullName(u auth.KeycloakUser) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
