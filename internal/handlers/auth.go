package handlers

import (
	"net/http"

	"gestion-formations/gate"
	"gestion-formations/i18n"
	"gestion-formations/internal/models"
	"gestion-formations/session"
	"gestion-formations/validation"
)

type AuthHandler struct {
	*Base
}

func NewAuthHandler(b *Base) *AuthHandler { return &AuthHandler{Base: b} }

// Login shows the form and exchanges credentials against the remote API.
// Already-authenticated visitors go straight to the dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok && s.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "login.html", nil)
		return
	}

	login := r.FormValue("login")
	password := r.FormValue("password")

	v := validation.Violations{}
	validation.Required("login", login, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		render(w, r, "login.html", map[string]any{"Violations": v, "Login": login})
		return
	}

	resp, err := h.API.Login(r.Context(), models.Credentials{Login: login, Password: password})
	if err != nil {
		// A 401 here is a wrong password, not a session to tear down.
		render(w, r, "login.html", map[string]any{"Error": i18n.T(langOf(r), "login_failed"), "Login": login})
		return
	}

	username := resp.Username
	if username == "" {
		username = login
	}
	if _, err := h.Sessions.Create(r.Context(), w, resp.Token, username, gate.ParseRole(resp.Role)); err != nil {
		render(w, r, "login.html", map[string]any{"Error": errorMessage(r, err), "Login": login})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register creates an account through the remote API and opens a session
// with the returned token and role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "register.html", map[string]any{"Roles": gate.Roles})
		return
	}

	login := r.FormValue("login")
	password := r.FormValue("password")
	role := r.FormValue("role")
	if role == "" {
		role = string(gate.RoleUtilisateur)
	}

	v := validation.Violations{}
	validation.Required("login", login, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		render(w, r, "register.html", map[string]any{"Violations": v, "Login": login, "Roles": gate.Roles})
		return
	}

	resp, err := h.API.Register(r.Context(), models.Credentials{Login: login, Password: password, Role: role})
	if err != nil {
		render(w, r, "register.html", map[string]any{"Error": errorMessage(r, err), "Login": login, "Roles": gate.Roles})
		return
	}

	username := resp.Username
	if username == "" {
		username = login
	}
	if _, err := h.Sessions.Create(r.Context(), w, resp.Token, username, gate.ParseRole(resp.Role)); err != nil {
		render(w, r, "register.html", map[string]any{"Error": errorMessage(r, err), "Login": login, "Roles": gate.Roles})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session and returns to the login entry point.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Profile enriches the page with the remote user-info lookup. A failure here
// reports inline and keeps the session: display enrichment never revokes
// authentication.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	data := map[string]any{"Username": s.Username, "Role": s.Role}

	info, err := h.API.UserInfo(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		data["Error"] = errorMessage(r, err)
	} else {
		data["Info"] = info
	}
	render(w, r, "profile.html", data)
}
