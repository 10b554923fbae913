// Package handlers contains the page handlers. Each one reads remote state
// through the API client, renders through the view package, and reports
// failures inline; the one exception is an authentication failure from the
// API, which always tears the session down and sends the visitor to /login,
// no matter which page triggered it.
package handlers

import (
	"errors"
	"net/http"

	"gestion-formations/gate"
	"gestion-formations/i18n"
	"gestion-formations/internal/api"
	"gestion-formations/session"
	"gestion-formations/view"
)

// Base carries the dependencies every handler shares.
type Base struct {
	API      *api.Client
	Sessions *session.Manager
	Gate     *gate.Gate
}

// authFailed handles the global 401/403 policy: clear the session, go to
// /login. Returns true when it consumed the error.
func (b *Base) authFailed(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, api.ErrUnauthenticated) {
		return false
	}
	b.Sessions.Clear(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// errorMessage turns any error into the text shown to the visitor: the
// server's own message verbatim when there is one, a localized fallback
// otherwise. No failure is ever swallowed silently.
func errorMessage(r *http.Request, err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return i18n.T(langOf(r), "generic_error")
}

func langOf(r *http.Request) string {
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// render wraps view.Render; a template failure at this point can only be
// reported as a bare 500.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		http.Error(w, "failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
