package main

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"

	"gestion-formations/gate"
	"gestion-formations/httpx"
	"gestion-formations/i18n"
	"gestion-formations/internal/handlers"
	"gestion-formations/internal/store"
	"gestion-formations/session"
	"gestion-formations/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	sessions *session.Manager
	gate     *gate.Gate
	store    *store.SessionStore
}

// NewApp creates a new application with all routes configured.
func NewApp(base *handlers.Base, st *store.SessionStore, dev bool) *App {
	app := &App{
		mux:      http.NewServeMux(),
		sessions: base.Sessions,
		gate:     base.Gate,
		store:    st,
	}
	// Expose minimal resolvers to the view layer so templates can show/hide
	// actions without importing the session or gate wiring.
	view.SetLangResolver(langFromRequest)
	view.SetRoleResolver(func(r *http.Request) gate.Role {
		return session.RoleFromContext(r.Context())
	})
	view.SetCanResolver(func(r *http.Request, resource, action string) bool {
		if dev {
			return true
		}
		return app.gate.Can(session.RoleFromContext(r.Context()), gate.Action(action), resource)
	})
	view.SetCSRFFieldResolver(func(r *http.Request) template.HTML {
		return csrf.TemplateField(r)
	})
	app.setupRoutes(base)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Global middleware: session loading + language preference.
	handler := a.sessions.Middleware(withPreferences(a.mux))
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes(base *handlers.Base) {
	dh := handlers.NewDashboardHandler(base)
	ah := handlers.NewAuthHandler(base)
	fh := handlers.NewFormationHandler(base)
	ph := handlers.NewParticipantHandler(base)
	rh := handlers.NewReferenceHandler(base)
	uh := handlers.NewUtilisateurHandler(base)

	// ─────────────────────────────────────────────────────────────────────────
	// Public routes (no auth required)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /", dh.Home)
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /register", ah.Register)
	a.mux.HandleFunc("POST /register", ah.Register)
	a.mux.HandleFunc("GET /logout", ah.Logout)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.health)

	// ─────────────────────────────────────────────────────────────────────────
	// Authenticated routes
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /dashboard", a.requireAuth(http.HandlerFunc(dh.Dashboard)))
	a.mux.Handle("GET /profile", a.requireAuth(http.HandlerFunc(ah.Profile)))

	// Formations
	a.mux.Handle("GET /formations",
		a.requireAuth(a.requirePermission("formation", gate.ActionList)(http.HandlerFunc(fh.List))))
	a.mux.Handle("GET /formations/new",
		a.requireAuth(a.requirePermission("formation", gate.ActionCreate)(http.HandlerFunc(fh.New))))
	a.mux.Handle("POST /formations",
		a.requireAuth(a.requirePermission("formation", gate.ActionCreate)(http.HandlerFunc(fh.Create))))
	a.mux.Handle("GET /formations/{id}",
		a.requireAuth(a.requirePermission("formation", gate.ActionView)(http.HandlerFunc(fh.View))))
	a.mux.Handle("GET /formations/{id}/edit",
		a.requireAuth(a.requirePermission("formation", gate.ActionUpdate)(http.HandlerFunc(fh.Edit))))
	a.mux.Handle("POST /formations/{id}",
		a.requireAuth(a.requirePermission("formation", gate.ActionUpdate)(http.HandlerFunc(fh.Update))))
	a.mux.Handle("POST /formations/{id}/delete",
		a.requireAuth(a.requirePermission("formation", gate.ActionDelete)(http.HandlerFunc(fh.Delete))))

	// Enrollment is a write on the formation's participant list.
	a.mux.Handle("GET /formations/{id}/enroll",
		a.requireAuth(a.requirePermission("formation", gate.ActionEnroll)(http.HandlerFunc(fh.EnrollDialog))))
	a.mux.Handle("POST /formations/{id}/enroll",
		a.requireAuth(a.requirePermission("formation", gate.ActionEnroll)(http.HandlerFunc(fh.EnrollConfirm))))
	a.mux.Handle("POST /formations/{id}/participants/{participant_id}/remove",
		a.requireAuth(a.requirePermission("formation", gate.ActionEnroll)(http.HandlerFunc(fh.RemoveParticipant))))

	// Participants
	a.mux.Handle("GET /participants",
		a.requireAuth(a.requirePermission("participant", gate.ActionList)(http.HandlerFunc(ph.List))))
	a.mux.Handle("GET /participants/new",
		a.requireAuth(a.requirePermission("participant", gate.ActionCreate)(http.HandlerFunc(ph.New))))
	a.mux.Handle("POST /participants",
		a.requireAuth(a.requirePermission("participant", gate.ActionCreate)(http.HandlerFunc(ph.Create))))
	a.mux.Handle("GET /participants/{id}",
		a.requireAuth(a.requirePermission("participant", gate.ActionView)(http.HandlerFunc(ph.View))))
	a.mux.Handle("GET /participants/{id}/edit",
		a.requireAuth(a.requirePermission("participant", gate.ActionUpdate)(http.HandlerFunc(ph.Edit))))
	a.mux.Handle("POST /participants/{id}",
		a.requireAuth(a.requirePermission("participant", gate.ActionUpdate)(http.HandlerFunc(ph.Update))))
	a.mux.Handle("POST /participants/{id}/delete",
		a.requireAuth(a.requirePermission("participant", gate.ActionDelete)(http.HandlerFunc(ph.Delete))))
	a.mux.Handle("POST /participants/{id}/enroll",
		a.requireAuth(a.requirePermission("participant", gate.ActionEnroll)(http.HandlerFunc(ph.Enroll))))

	// Reference entities
	a.mux.Handle("GET /domaines",
		a.requireAuth(a.requirePermission("domaine", gate.ActionList)(http.HandlerFunc(rh.Domaines))))
	a.mux.Handle("POST /domaines",
		a.requireAuth(a.requirePermission("domaine", gate.ActionCreate)(http.HandlerFunc(rh.CreateDomaine))))
	a.mux.Handle("POST /domaines/{id}/delete",
		a.requireAuth(a.requirePermission("domaine", gate.ActionDelete)(http.HandlerFunc(rh.DeleteDomaine))))

	a.mux.Handle("GET /profils",
		a.requireAuth(a.requirePermission("profil", gate.ActionList)(http.HandlerFunc(rh.Profils))))
	a.mux.Handle("POST /profils",
		a.requireAuth(a.requirePermission("profil", gate.ActionCreate)(http.HandlerFunc(rh.CreateProfil))))
	a.mux.Handle("POST /profils/{id}/delete",
		a.requireAuth(a.requirePermission("profil", gate.ActionDelete)(http.HandlerFunc(rh.DeleteProfil))))

	a.mux.Handle("GET /employeurs",
		a.requireAuth(a.requirePermission("employeur", gate.ActionList)(http.HandlerFunc(rh.Employeurs))))
	a.mux.Handle("POST /employeurs",
		a.requireAuth(a.requirePermission("employeur", gate.ActionCreate)(http.HandlerFunc(rh.CreateEmployeur))))
	a.mux.Handle("POST /employeurs/{id}/delete",
		a.requireAuth(a.requirePermission("employeur", gate.ActionDelete)(http.HandlerFunc(rh.DeleteEmployeur))))

	a.mux.Handle("GET /formateurs",
		a.requireAuth(a.requirePermission("formateur", gate.ActionList)(http.HandlerFunc(rh.Formateurs))))
	a.mux.Handle("POST /formateurs",
		a.requireAuth(a.requirePermission("formateur", gate.ActionCreate)(http.HandlerFunc(rh.CreateFormateur))))
	a.mux.Handle("POST /formateurs/{id}/delete",
		a.requireAuth(a.requirePermission("formateur", gate.ActionDelete)(http.HandlerFunc(rh.DeleteFormateur))))

	// ─────────────────────────────────────────────────────────────────────────
	// Admin routes (account management)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /utilisateurs",
		a.requireAdmin(http.HandlerFunc(uh.List)))
	a.mux.Handle("POST /utilisateurs/{id}/role",
		a.requireAdmin(http.HandlerFunc(uh.UpdateRole)))
	a.mux.Handle("POST /utilisateurs/{id}/delete",
		a.requireAdmin(http.HandlerFunc(uh.Delete)))

	// ─────────────────────────────────────────────────────────────────────────
	// Static files
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

// requireAuth wraps a handler to require a live session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return a.sessions.RequireAuth(next)
}

// requirePermission wraps a handler to require a resource permission for the
// visitor's role. Denials render as 403, not a redirect: the visitor is
// authenticated, just not allowed.
func (a *App) requirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := session.RoleFromContext(r.Context())
			if err := a.gate.Authorize(role, action, resourceType); err != nil {
				forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAdmin wraps a handler to require the administrator role.
func (a *App) requireAdmin(next http.Handler) http.Handler {
	return a.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.gate.IsAdmin(session.RoleFromContext(r.Context())) {
			forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// forbidden answers a denial in whichever representation the client asked for:
// JSON for API-style callers, the denial page for browser navigation.
func forbidden(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	if err := view.Render(w, r, "forbidden.html", nil); err != nil {
		fmt.Fprintln(w, i18n.T(langFromRequest(r), "forbidden"))
	}
}

// health reports liveness plus whether the session store answers.
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := a.store.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	httpx.JSON(w, code, map[string]string{"status": status})
}

// langFromRequest resolves the display language: explicit cookie first, then
// the Accept-Language header, then French.
func langFromRequest(r *http.Request) string {
	if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
		return i18n.DetectLanguage(c.Value)
	}
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// withPreferences persists an explicit ?lang= choice in a cookie and mirrors
// the resolved language into Accept-Language so every downstream consumer
// agrees on one value.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("lang"); q != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    q,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
			r.Header.Set("Accept-Language", q)
		} else if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			r.Header.Set("Accept-Language", c.Value)
		}
		next.ServeHTTP(w, r)
	})
}
