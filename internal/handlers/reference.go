package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"gestion-formations/i18n"
	"gestion-formations/internal/models"
	"gestion-formations/validation"
)

// ReferenceHandler serves the flat reference entities: domaines, profils,
// employeurs and formateurs. They share the same list/create/delete page
// shape, so one handler with one method set per entity keeps the routing
// table readable.
type ReferenceHandler struct {
	*Base
}

func NewReferenceHandler(b *Base) *ReferenceHandler { return &ReferenceHandler{Base: b} }

func (h *ReferenceHandler) flashBack(w http.ResponseWriter, r *http.Request, path, code string) {
	http.Redirect(w, r, path+"?flash="+url.QueryEscape(i18n.T(langOf(r), code)), http.StatusSeeOther)
}

// ── Domaines ────────────────────────────────────────────────────────────────

func (h *ReferenceHandler) Domaines(w http.ResponseWriter, r *http.Request) {
	domaines, err := h.API.ListDomaines(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "domaines.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "domaines.html", map[string]any{"Domaines": domaines, "Flash": r.URL.Query().Get("flash")})
}

func (h *ReferenceHandler) CreateDomaine(w http.ResponseWriter, r *http.Request) {
	libelle := r.FormValue("libelle")
	v := validation.Violations{}
	validation.Required("libelle", libelle, v)
	if !v.Empty() {
		render(w, r, "domaines.html", map[string]any{"Violations": v})
		return
	}
	if _, err := h.API.CreateDomaine(r.Context(), models.Domaine{Libelle: libelle}); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "domaines.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/domaines", "created")
}

func (h *ReferenceHandler) DeleteDomaine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.DeleteDomaine(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "domaines.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/domaines", "deleted")
}

// ── Profils ─────────────────────────────────────────────────────────────────

func (h *ReferenceHandler) Profils(w http.ResponseWriter, r *http.Request) {
	profils, err := h.API.ListProfils(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "profils.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "profils.html", map[string]any{"Profils": profils, "Flash": r.URL.Query().Get("flash")})
}

func (h *ReferenceHandler) CreateProfil(w http.ResponseWriter, r *http.Request) {
	libelle := r.FormValue("libelle")
	v := validation.Violations{}
	validation.Required("libelle", libelle, v)
	if !v.Empty() {
		render(w, r, "profils.html", map[string]any{"Violations": v})
		return
	}
	if _, err := h.API.CreateProfil(r.Context(), models.Profil{Libelle: libelle}); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "profils.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/profils", "created")
}

func (h *ReferenceHandler) DeleteProfil(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.DeleteProfil(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "profils.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/profils", "deleted")
}

// ── Employeurs ──────────────────────────────────────────────────────────────

func (h *ReferenceHandler) Employeurs(w http.ResponseWriter, r *http.Request) {
	employeurs, err := h.API.ListEmployeurs(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "employeurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "employeurs.html", map[string]any{"Employeurs": employeurs, "Flash": r.URL.Query().Get("flash")})
}

func (h *ReferenceHandler) CreateEmployeur(w http.ResponseWriter, r *http.Request) {
	e := models.Employeur{
		Nom:     r.FormValue("nom"),
		Adresse: r.FormValue("adresse"),
		Tel:     r.FormValue("tel"),
	}
	v := validation.Violations{}
	validation.Required("nom", e.Nom, v)
	if !v.Empty() {
		render(w, r, "employeurs.html", map[string]any{"Violations": v})
		return
	}
	if _, err := h.API.CreateEmployeur(r.Context(), e); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "employeurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/employeurs", "created")
}

func (h *ReferenceHandler) DeleteEmployeur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.DeleteEmployeur(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "employeurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/employeurs", "deleted")
}

// ── Formateurs ──────────────────────────────────────────────────────────────

func (h *ReferenceHandler) Formateurs(w http.ResponseWriter, r *http.Request) {
	formateurs, err := h.API.ListFormateurs(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	employeurs, err := h.API.ListEmployeurs(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formateurs.html", map[string]any{"Error": errorMessage(r, err), "Formateurs": formateurs})
		return
	}
	render(w, r, "formateurs.html", map[string]any{
		"Formateurs": formateurs,
		"Employeurs": employeurs,
		"Flash":      r.URL.Query().Get("flash"),
	})
}

func (h *ReferenceHandler) CreateFormateur(w http.ResponseWriter, r *http.Request) {
	f := models.Formateur{
		Nom:    r.FormValue("nom"),
		Prenom: r.FormValue("prenom"),
		Email:  r.FormValue("email"),
		Tel:    r.FormValue("tel"),
	}
	v := validation.Violations{}
	validation.Required("nom", f.Nom, v)
	validation.Required("prenom", f.Prenom, v)
	if f.Email != "" {
		validation.Email("email", f.Email, v)
	}
	if id, err := strconv.ParseInt(r.FormValue("employeurId"), 10, 64); err == nil && id > 0 {
		f.Employeur = &models.Employeur{ID: id}
	}
	if !v.Empty() {
		render(w, r, "formateurs.html", map[string]any{"Violations": v})
		return
	}
	if _, err := h.API.CreateFormateur(r.Context(), f); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/formateurs", "created")
}

func (h *ReferenceHandler) DeleteFormateur(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.DeleteFormateur(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formateurs.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.flashBack(w, r, "/formateurs", "deleted")
}
