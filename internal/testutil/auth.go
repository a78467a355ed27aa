package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
	"github.com/golang-jwt/jwt/v4"
)

// TestIssuer is the issuer baked into test verifiers and tokens.
const TestIssuer = "https://keycloak.test/realms/carebridge"

const testKeyID = "e2e-test-key"

// staticKeys serves one RSA public key for every kid.
type staticKeys struct {
	key *rsa.PublicKey
}

func (s *staticKeys) Get(kid string) (*rsa.PublicKey, error) {
	return s.key, nil
}

// CreateTestVerifier builds a verifier backed by a freshly generated RSA key
// pair and returns the private key for signing test tokens.
func CreateTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate test key pair: %v", err)
	}

	verifier := auth.NewVerifier(
		auth.Config{Issuer: TestIssuer},
		&staticKeys{key: &privateKey.PublicKey},
	)
	return verifier, privateKey
}

// GenerateToken signs a token the test verifier accepts.
func GenerateToken(t *testing.T, key *rsa.PrivateKey, userID, username string, roles ...string) string {
	t.Helper()

	roleList := make([]interface{}, len(roles))
	for i, r := range roles {
		roleList[i] = r
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":                userID,
		"iss":                TestIssuer,
		"exp":                time.Now().Add(1 * time.Hour).Unix(),
		"iat":                time.Now().Unix(),
		"preferred_username": username,
		"realm_access": map[string]interface{}{
			"roles": roleList,
		},
	})
	token.Header["kid"] = testKeyID

	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

// GenerateDoctorToken signs a token carrying the DOCTOR role.
func GenerateDoctorToken(t *testing.T, key *rsa.PrivateKey, username string) string {
	t.Helper()
	return GenerateToken(t, key, "doctor-"+username, username, "DOCTOR")
}

// GeneratePatientToken signs a token carrying the PATIENT role.
func GeneratePatientToken(t *testing.T, key *rsa.PrivateKey, username string) string {
	t.Helper()
	return GenerateToken(t, key, "patient-"+username, username, "PATIENT")
}

// GenerateAdminToken signs a token carrying the ADMIN role.
func GenerateAdminToken(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	return GenerateToken(t, key, "admin-1", "admin", "ADMIN")
}
