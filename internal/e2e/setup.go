//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
	httpserver "github.com/CareBridge-Health/scheduling-service/internal/http"
	"github.com/CareBridge-Health/scheduling-service/internal/testutil"
)

// TestServer is a complete e2e environment: a real PostgreSQL database, the
// full router behind an httptest server, an in-memory event publisher and a
// test JWT verifier with its signing key.
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest builds the test environment. It skips the test when no
// integration database is configured.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mockPublisher := testutil.NewMockPublisher()

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	verifier, privateKey := testutil.CreateTestVerifier(t)

	router := httpserver.SetupRouter(db, verifier, perms, mockPublisher, nil)
	server := httptest.NewServer(router)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
		PrivateKey:    privateKey,
	}
}

// Cleanup releases all test resources.
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	ts.Server.Close()
	testutil.CleanupTestDB(t, ts.DB)
	ts.DB.Close()
}

// DoctorClient returns a client authenticated as a doctor.
func (ts *TestServer) DoctorClient(t *testing.T, username string) *testutil.HTTPTestClient {
	t.Helper()
	token := testutil.GenerateDoctorToken(t, ts.PrivateKey, username)
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}

// PatientClient returns a client authenticated as a patient.
func (ts *TestServer) PatientClient(t *testing.T, username string) *testutil.HTTPTestClient {
	t.Helper()
	token := testutil.GeneratePatientToken(t, ts.PrivateKey, username)
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}

// AdminClient returns a client authenticated as an admin.
func (ts *TestServer) AdminClient(t *testing.T) *testutil.HTTPTestClient {
	t.Helper()
	token := testutil.GenerateAdminToken(t, ts.PrivateKey)
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
