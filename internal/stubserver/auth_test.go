package stubserver_test

import (
	"net/http"
	"testing"

	"droneRentalMarketplace/internal/testutil"
	"droneRentalMarketplace/models"
)

func get(t *testing.T, url, token string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	_, baseURL := testutil.StartStub(t)

	if code := get(t, baseURL+"/owners/", ""); code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", code)
	}
	if code := get(t, baseURL+"/owners/", "garbage"); code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", code)
	}
	token := testutil.SignToken(t, "9876543210", models.RoleFarmer)
	if code := get(t, baseURL+"/owners/", token); code != http.StatusOK {
		t.Errorf("signed token: status %d, want 200", code)
	}
}

func TestRequireRole(t *testing.T) {
	_, baseURL := testutil.StartStub(t)

	farmer := testutil.SignToken(t, "9876543210", models.RoleFarmer)
	if code := get(t, baseURL+"/owners/me/drones", farmer); code != http.StatusForbidden {
		t.Errorf("farmer token on owner route: status %d, want 403", code)
	}
}
