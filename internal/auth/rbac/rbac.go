// Package rbac provides the role gate for protected operations.
// Roles are a closed enum; each permission maps to the set of roles
// allowed to perform it.
package rbac

import (
	"net/http"
	"strings"

	"backoffice_portal_backend/platform/httpkit"
	"backoffice_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Role is a user's role name as stored in the roles table.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleCro        Role = "cro"
	RoleSalesAgent Role = "salesagent"
	RoleVendor     Role = "vendor"
	RoleCsrLead    Role = "csrlead"
	RoleOther      Role = "other"
	RoleClient     Role = "client"
)

// Parse resolves a role name case-insensitively.
// Returns false for names outside the closed set.
func Parse(name string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(name))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCro:
		return RoleCro, true
	case RoleSalesAgent:
		return RoleSalesAgent, true
	case RoleVendor:
		return RoleVendor, true
	case RoleCsrLead:
		return RoleCsrLead, true
	case RoleOther:
		return RoleOther, true
	case RoleClient:
		return RoleClient, true
	}
	return "", false
}

// Permission identifies a gated operation.
type Permission string

const (
	PermLeadCreate      Permission = "lead:create"
	PermLeadImport      Permission = "lead:import"
	PermLeadUpdate      Permission = "lead:update"
	PermLeadQualify     Permission = "lead:qualify"
	PermLeadRemarketing Permission = "lead:remarketing"
	PermLeadAssign      Permission = "lead:assign"
	PermTicketAttend    Permission = "ticket:attend"
	PermTicketConvert   Permission = "ticket:convert"
	PermVendorOnboard   Permission = "vendor:onboard"
	PermReferenceManage Permission = "reference:manage"
	PermUserAdminRead   Permission = "user:admin_read"

	PermNotificationCreate Permission = "notification:create"
)

// permissions maps each gated operation to the roles allowed to perform it.
var permissions = map[Permission][]Role{
	PermLeadCreate:      {RoleSuperAdmin, RoleCro},
	PermLeadImport:      {RoleSuperAdmin, RoleCro},
	PermLeadUpdate:      {RoleSuperAdmin, RoleCro},
	PermLeadQualify:     {RoleSuperAdmin, RoleCro},
	PermLeadRemarketing: {RoleSuperAdmin, RoleCro},
	PermLeadAssign:      {RoleSuperAdmin, RoleCro, RoleSalesAgent, RoleOther},
	PermTicketAttend:    {RoleCsrLead},
	PermTicketConvert:   {RoleSuperAdmin, RoleCsrLead},
	PermVendorOnboard:   {RoleSuperAdmin, RoleVendor},
	PermReferenceManage: {RoleSuperAdmin, RoleAdmin},
	PermUserAdminRead:   {RoleSuperAdmin, RoleAdmin},

	PermNotificationCreate: {RoleSuperAdmin, RoleAdmin},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role Role, perm Permission) bool {
	for _, allowed := range permissions[perm] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Require returns middleware enforcing the permission. Denials are logged
// with the requester's identity and never silently swallowed.
func Require(perm Permission, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := httpkit.MustGetIdentity(c)
		if identity == nil {
			return
		}

		role, ok := Parse(identity.Role())
		if !ok || !Allowed(role, perm) {
			log.AccessDenied(identity.UserID().String(), identity.Email(), identity.Role(), c.ClientIP(), c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
