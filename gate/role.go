// Package gate decides which views and actions a role may reach. Roles are a
// closed enumeration persisted with the session; every check fails closed when
// the role is unknown, so a corrupted or missing role never widens access.
package gate

import "strings"

// Role is the access level attached to a session.
type Role string

const (
	RoleAdministrateur Role = "ADMINISTRATEUR"
	RoleResponsable    Role = "RESPONSABLE"
	RoleUtilisateur    Role = "UTILISATEUR"
	// RoleUnknown is the zero value: absent, empty or unrecognized role
	// strings all collapse to it.
	RoleUnknown Role = ""
)

// Roles lists the assignable roles, in promotion order.
var Roles = []Role{RoleUtilisateur, RoleResponsable, RoleAdministrateur}

// ParseRole maps a persisted role string to a Role. Unrecognized values
// return RoleUnknown rather than an error; callers treat that as "no role".
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdministrateur:
		return RoleAdministrateur
	case RoleResponsable:
		return RoleResponsable
	case RoleUtilisateur:
		return RoleUtilisateur
	}
	return RoleUnknown
}

// Known reports whether r is one of the assignable roles.
func (r Role) Known() bool {
	return r == RoleAdministrateur || r == RoleResponsable || r == RoleUtilisateur
}

// VisibleFor reports whether a view or affordance restricted to allowed may
// be shown to r. RoleUnknown is never a member of a non-empty set, and an
// empty set grants nothing.
func VisibleFor(r Role, allowed ...Role) bool {
	if !r.Known() {
		return false
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
