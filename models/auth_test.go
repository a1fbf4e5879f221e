package models

import (
	"encoding/json"
	"testing"
)

func TestAuthResponse_PrimaryRoleTrusted(t *testing.T) {
	raw := `{"access_token":"tok","token_type":"bearer","role":"owner","roles":["farmer","owner"]}`
	var resp AuthResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Role != "owner" {
		t.Fatalf("role = %q, want owner", resp.Role)
	}
	if len(resp.Roles) != 2 {
		t.Fatalf("roles = %v, want both entries kept", resp.Roles)
	}
}

func TestAuthResponse_MissingRolePromotesFirst(t *testing.T) {
	raw := `{"access_token":"tok","token_type":"bearer","roles":["farmer"]}`
	var resp AuthResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Role != "farmer" {
		t.Fatalf("role = %q, want promoted farmer", resp.Role)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != "farmer" {
		t.Fatalf("roles = %v, want [farmer]", resp.Roles)
	}
}

func TestAuthResponse_LoneRoleBackfillsRoles(t *testing.T) {
	raw := `{"access_token":"tok","token_type":"bearer","role":"owner"}`
	var resp AuthResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Role != "owner" || len(resp.Roles) != 1 || resp.Roles[0] != "owner" {
		t.Fatalf("got role=%q roles=%v, want owner backfilled", resp.Role, resp.Roles)
	}
}

func TestAuthResponse_DegenerateOutcome(t *testing.T) {
	raw := `{"access_token":"tok","token_type":"bearer"}`
	var resp AuthResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Role != "" || len(resp.Roles) != 0 {
		t.Fatalf("got role=%q roles=%v, want both empty", resp.Role, resp.Roles)
	}
}

func TestParseRoles_DropsUnknown(t *testing.T) {
	roles := ParseRoles([]string{"farmer", "pilot", "OWNER"})
	if len(roles) != 2 || roles[0] != RoleFarmer || roles[1] != RoleOwner {
		t.Fatalf("ParseRoles = %v", roles)
	}
}
