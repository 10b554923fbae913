package gate_test

import (
	"testing"

	"gestion-formations/gate"
)

func TestPermission_NewPermission(t *testing.T) {
	perm := gate.NewPermission("formation", gate.ActionCreate)
	if perm != "formation:create" {
		t.Errorf("expected 'formation:create', got '%s'", perm)
	}
}

func TestPermission_Parse(t *testing.T) {
	perm := gate.Permission("participant:view")
	res, act := perm.Parse()
	if res != "participant" {
		t.Errorf("expected resource 'participant', got '%s'", res)
	}
	if act != gate.ActionView {
		t.Errorf("expected action 'view', got '%s'", act)
	}
}

func TestPermission_Parse_Invalid(t *testing.T) {
	perm := gate.Permission("invalid")
	res, act := perm.Parse()
	if res != "" || act != "" {
		t.Errorf("expected empty strings, got '%s' and '%s'", res, act)
	}
}

func TestPermission_Matches_Exact(t *testing.T) {
	perm := gate.Permission("formation:create")
	if !perm.Matches("formation:create") {
		t.Error("expected exact match to succeed")
	}
	if perm.Matches("formation:delete") {
		t.Error("expected different action to fail")
	}
	if perm.Matches("domaine:create") {
		t.Error("expected different resource to fail")
	}
}

func TestPermission_Matches_SuperAdmin(t *testing.T) {
	perm := gate.PermissionSuperAdmin
	if !perm.Matches("formation:create") {
		t.Error("superadmin should match any permission")
	}
	if !perm.Matches("utilisateur:delete") {
		t.Error("superadmin should match any permission")
	}
}

func TestPermission_Matches_ResourceWildcard(t *testing.T) {
	perm := gate.Permission("formation:*")
	if !perm.Matches("formation:create") {
		t.Error("formation:* should match formation:create")
	}
	if !perm.Matches("formation:enroll") {
		t.Error("formation:* should match formation:enroll")
	}
	if perm.Matches("utilisateur:create") {
		t.Error("formation:* should not match utilisateur:create")
	}
}
