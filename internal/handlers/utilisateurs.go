package handlers

import (
	"net/http"
	"net/url"

	"gestion-formations/gate"
	"gestion-formations/i18n"
)

// UtilisateurHandler manages back-office accounts. Every route here sits
// behind the admin-only middleware; the handler still re-checks destructive
// invariants rather than trusting the router alone.
type UtilisateurHandler struct {
	*Base
}

func NewUtilisateurHandler(b *Base) *UtilisateurHandler { return &UtilisateurHandler{Base: b} }

func (h *UtilisateurHandler) List(w http.ResponseWriter, r *http.Request) {
	utilisateurs, err := h.API.ListUtilisateurs(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "utilisateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "utilisateurs.html", map[string]any{
		"Utilisateurs": utilisateurs,
		"Roles":        gate.Roles,
		"Flash":        r.URL.Query().Get("flash"),
	})
}

// UpdateRole assigns exactly one of the known roles to an account. The form
// posts the target role; anything outside the enum is rejected before the
// network call so the server never sees an invented role string.
func (h *UtilisateurHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	role := gate.ParseRole(r.FormValue("role"))
	if !role.Known() {
		render(w, r, "utilisateurs.html", map[string]any{"Error": i18n.T(langOf(r), "generic_error")})
		return
	}
	if _, err := h.API.UpdateRole(r.Context(), id, string(role)); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "utilisateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	http.Redirect(w, r, "/utilisateurs?flash="+url.QueryEscape(i18n.T(langOf(r), "updated")), http.StatusSeeOther)
}

// Delete removes an account. Administrators cannot be deleted: demote first,
// then delete. The listing omits the delete control for them too, but the
// check here is the one that counts.
func (h *UtilisateurHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	utilisateurs, err := h.API.ListUtilisateurs(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "utilisateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	for _, u := range utilisateurs {
		if u.ID == id && gate.ParseRole(u.Role) == gate.RoleAdministrateur {
			render(w, r, "utilisateurs.html", map[string]any{
				"Utilisateurs": utilisateurs,
				"Roles":        gate.Roles,
				"Error":        i18n.T(langOf(r), "admin_undeletable"),
			})
			return
		}
	}
	if err := h.API.DeleteUtilisateur(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "utilisateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	http.Redirect(w, r, "/utilisateurs?flash="+url.QueryEscape(i18n.T(langOf(r), "deleted")), http.StatusSeeOther)
}
