package handlers

import (
	"net/http"

	"gestion-formations/session"
)

// DashboardHandler serves the landing page and the statistics dashboard.
type DashboardHandler struct {
	*Base
}

func NewDashboardHandler(b *Base) *DashboardHandler { return &DashboardHandler{Base: b} }

// Home is the unauthenticated entry point: authenticated visitors go to the
// dashboard, everyone else to the login form.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s, ok := session.FromContext(r.Context()); ok && s.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard renders the counters and the budget-by-domaine table. A failing
// statistics endpoint degrades to an inline error, except for auth failures
// which tear the session down like everywhere else.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.API.Statistics(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "dashboard.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	var total float64
	for _, b := range stats.Budget {
		total += b.Budget
	}
	render(w, r, "dashboard.html", map[string]any{
		"Stats":       stats,
		"TotalBudget": total,
	})
}
