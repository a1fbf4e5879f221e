package testutil

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/internal/session"
	"droneRentalMarketplace/internal/stubserver"
	"droneRentalMarketplace/models"
)

// TestSecret signs stub tokens in tests.
const TestSecret = "test-secret"

// OpenTempStore opens a session store backed by a file in a per-test temp
// directory. Closed via t.Cleanup.
func OpenTempStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// StartStub boots an in-memory backend and returns it with its base URL.
// Shut down via t.Cleanup.
func StartStub(t *testing.T) (*stubserver.Server, string) {
	t.Helper()
	stub := stubserver.NewServer(TestSecret)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)
	return stub, srv.URL
}

// NewClient builds an api client against the given base URL.
func NewClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	client, err := api.New(baseURL, 5*time.Second)
	if err != nil {
		t.Fatalf("new api client: %v", err)
	}
	return client
}

// SignToken returns a signed stub-compatible JWT for direct service calls.
func SignToken(t *testing.T, mobile string, role models.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"mobile": mobile,
		"role":   role.Wire(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(TestSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
