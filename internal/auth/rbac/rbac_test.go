package rbac

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"superadmin", RoleSuperAdmin, true},
		{"SuperAdmin", RoleSuperAdmin, true},
		{"  CSRLEAD  ", RoleCsrLead, true},
		{"salesagent", RoleSalesAgent, true},
		{"client", RoleClient, true},
		{"manager", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSuperAdmin, PermLeadCreate, true},
		{RoleCro, PermLeadCreate, true},
		{RoleSalesAgent, PermLeadCreate, false},
		{RoleSalesAgent, PermLeadAssign, true},
		{RoleOther, PermLeadAssign, true},
		{RoleCsrLead, PermLeadAssign, false},
		{RoleCsrLead, PermTicketAttend, true},
		{RoleSuperAdmin, PermTicketAttend, false},
		{RoleSuperAdmin, PermTicketConvert, true},
		{RoleCsrLead, PermTicketConvert, true},
		{RoleVendor, PermVendorOnboard, true},
		{RoleAdmin, PermVendorOnboard, false},
		{RoleAdmin, PermReferenceManage, true},
		{RoleAdmin, PermUserAdminRead, true},
		{RoleClient, PermUserAdminRead, false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.role, tt.perm); got != tt.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestAllowedUnknownRole(t *testing.T) {
	if Allowed(Role("intruder"), PermLeadCreate) {
		t.Error("unknown role must never be allowed")
	}
}
