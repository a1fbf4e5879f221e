package session

import (
	"path/filepath"
	"testing"

	"droneRentalMarketplace/models"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s, _ := openTemp(t)
	if err := s.SetToken("tok123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	got, err := s.Token()
	if err != nil || got != "tok123" {
		t.Fatalf("Token() = (%q, %v)", got, err)
	}
	// Empty write removes the key.
	if err := s.SetToken(""); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	got, err = s.Token()
	if err != nil || got != "" {
		t.Fatalf("Token() after clear = (%q, %v)", got, err)
	}
}

func TestStore_RoleFields(t *testing.T) {
	s, _ := openTemp(t)

	if _, ok, err := s.SelectedRole(); err != nil || ok {
		t.Fatalf("fresh store has a selected role")
	}
	if err := s.SetSelectedRole(models.RoleOwner); err != nil {
		t.Fatalf("set role: %v", err)
	}
	role, ok, err := s.SelectedRole()
	if err != nil || !ok || role != models.RoleOwner {
		t.Fatalf("SelectedRole() = (%q, %v, %v)", role, ok, err)
	}
	if err := s.ClearSelectedRole(); err != nil {
		t.Fatalf("clear role: %v", err)
	}
	if _, ok, _ := s.SelectedRole(); ok {
		t.Fatalf("selected role survived clear")
	}

	if err := s.SetAvailableRoles([]models.Role{models.RoleFarmer, models.RoleOwner}); err != nil {
		t.Fatalf("set roles: %v", err)
	}
	roles, err := s.AvailableRoles()
	if err != nil {
		t.Fatalf("available roles: %v", err)
	}
	if len(roles) != 2 || roles[0] != models.RoleFarmer || roles[1] != models.RoleOwner {
		t.Fatalf("AvailableRoles() = %v", roles)
	}
	if err := s.SetAvailableRoles(nil); err != nil {
		t.Fatalf("clear roles: %v", err)
	}
	roles, _ = s.AvailableRoles()
	if len(roles) != 0 {
		t.Fatalf("roles survived empty set: %v", roles)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	s, path := openTemp(t)
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.SetMobile("9876543210"); err != nil {
		t.Fatalf("set mobile: %v", err)
	}
	if err := s.SetProfileName("Asha"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := s.SetHasSeenOnboarding(true); err != nil {
		t.Fatalf("set onboarding: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if tok, _ := reopened.Token(); tok != "tok" {
		t.Errorf("token = %q after reopen", tok)
	}
	if mobile, _ := reopened.Mobile(); mobile != "9876543210" {
		t.Errorf("mobile = %q after reopen", mobile)
	}
	if name, _ := reopened.ProfileName(); name != "Asha" {
		t.Errorf("profile name = %q after reopen", name)
	}
	if seen, _ := reopened.HasSeenOnboarding(); !seen {
		t.Errorf("onboarding flag lost on reopen")
	}
}

func TestStore_ClearWipesEverything(t *testing.T) {
	s, _ := openTemp(t)
	_ = s.SetToken("tok")
	_ = s.SetMobile("9876543210")
	_ = s.SetSelectedRole(models.RoleFarmer)
	_ = s.SetAvailableRoles([]models.Role{models.RoleFarmer})
	_ = s.SetPreferredRole(models.RoleFarmer)
	_ = s.SetHasSeenOnboarding(true)

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if tok, _ := s.Token(); tok != "" {
		t.Errorf("token survived Clear")
	}
	if mobile, _ := s.Mobile(); mobile != "" {
		t.Errorf("mobile survived Clear")
	}
	if _, ok, _ := s.SelectedRole(); ok {
		t.Errorf("selected role survived Clear")
	}
	if roles, _ := s.AvailableRoles(); len(roles) != 0 {
		t.Errorf("roles survived Clear: %v", roles)
	}
	if seen, _ := s.HasSeenOnboarding(); seen {
		t.Errorf("onboarding flag survived Clear")
	}
}

func TestStore_UnknownPersistedRoleIgnored(t *testing.T) {
	s, _ := openTemp(t)
	// Simulate a value written by a newer or corrupted build.
	if err := s.set(keySelectedRole, "pilot"); err != nil {
		t.Fatalf("seed raw role: %v", err)
	}
	if _, ok, err := s.SelectedRole(); err != nil || ok {
		t.Fatalf("unknown role reported as valid")
	}
}
