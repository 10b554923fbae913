package gate

// Gate maps each role to the set of permissions it grants. It is the single
// authorization checkpoint: navigation links, action buttons and route
// middleware all ask the same instance, so a role's reach is defined once.
type Gate struct {
	grants map[Role][]Permission
}

// New creates an empty Gate. Roles with no grant deny everything.
func New() *Gate {
	return &Gate{grants: make(map[Role][]Permission)}
}

// Grant adds permissions to a role. Repeated calls accumulate.
func (g *Gate) Grant(r Role, perms ...Permission) {
	g.grants[r] = append(g.grants[r], perms...)
}

// Can reports whether role r may perform action on resourceType.
// Unknown roles can do nothing.
func (g *Gate) Can(r Role, action Action, resourceType string) bool {
	if !r.Known() {
		return false
	}
	requested := NewPermission(resourceType, action)
	for _, p := range g.grants[r] {
		if p.Matches(requested) {
			return true
		}
	}
	return false
}

// Authorize is Can as an error: nil when allowed, ErrUnknownRole for a role
// outside the enumeration, ErrUnauthorized otherwise.
func (g *Gate) Authorize(r Role, action Action, resourceType string) error {
	if !r.Known() {
		return ErrUnknownRole
	}
	if !g.Can(r, action, resourceType) {
		return ErrUnauthorized
	}
	return nil
}

// IsAdmin reports whether the role carries the superadmin permission.
func (g *Gate) IsAdmin(r Role) bool {
	for _, p := range g.grants[r] {
		if p == PermissionSuperAdmin {
			return true
		}
	}
	return false
}

// Default returns the gate configured with the application's role model:
// administrators manage everything including accounts, responsables manage
// the training catalogue, plain users only read it.
func Default() *Gate {
	g := New()
	g.Grant(RoleAdministrateur, PermissionSuperAdmin)
	for _, res := range []string{"formation", "participant", "formateur", "employeur", "domaine", "profil"} {
		g.Grant(RoleResponsable, Permission(res+":*"))
		g.Grant(RoleUtilisateur, NewPermission(res, ActionList), NewPermission(res, ActionView))
	}
	return g
}
