package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gestion-formations/httpx"
	"gestion-formations/i18n"
	"gestion-formations/internal/enroll"
	"gestion-formations/internal/models"
	"gestion-formations/validation"
)

type FormationHandler struct {
	*Base
}

func NewFormationHandler(b *Base) *FormationHandler { return &FormationHandler{Base: b} }

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// List renders the formations table, or the raw collection for JSON clients.
func (h *FormationHandler) List(w http.ResponseWriter, r *http.Request) {
	formations, err := h.API.ListFormations(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadGateway, errorMessage(r, err), nil)
			return
		}
		render(w, r, "formations.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": formations, "total": len(formations)})
		return
	}
	render(w, r, "formations.html", map[string]any{"Formations": formations, "Flash": r.URL.Query().Get("flash")})
}

// View shows one formation with its participant list and the member-removal
// affordance.
func (h *FormationHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	formation, err := h.API.GetFormation(r.Context(), id)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formation_details.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "formation_details.html", map[string]any{
		"Formation": formation,
		"Active":    formation.Active(time.Now()),
		"Flash":     r.URL.Query().Get("flash"),
	})
}

// New shows the creation form with the domaine and formateur reference lists.
func (h *FormationHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "formation_form.html", map[string]any{})
}

func (h *FormationHandler) renderForm(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	domaines, err := h.API.ListDomaines(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		data["Error"] = errorMessage(r, err)
		render(w, r, name, data)
		return
	}
	formateurs, err := h.API.ListFormateurs(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		data["Error"] = errorMessage(r, err)
		render(w, r, name, data)
		return
	}
	data["Domaines"] = domaines
	data["Formateurs"] = formateurs
	render(w, r, name, data)
}

// formationFromForm validates the submitted fields; violations mean no
// request goes out at all.
func formationFromForm(r *http.Request) (models.Formation, validation.Violations) {
	v := validation.Violations{}
	titre := r.FormValue("titre")
	lieu := r.FormValue("lieu")
	validation.Required("titre", titre, v)
	validation.Required("lieu", lieu, v)
	annee := validation.Year("annee", r.FormValue("annee"), 2000, 2100, v)
	dateDebut := validation.Date("dateDebut", r.FormValue("dateDebut"), v)

	duree, _ := strconv.Atoi(r.FormValue("duree"))
	validation.PositiveInt("duree", duree, v)
	budget, _ := strconv.ParseFloat(r.FormValue("budget"), 64)
	validation.PositiveFloat("budget", budget, v)

	f := models.Formation{
		Titre:     titre,
		Annee:     annee,
		Duree:     duree,
		Budget:    budget,
		Lieu:      lieu,
		DateDebut: dateDebut,
	}
	if id, err := strconv.ParseInt(r.FormValue("domaineId"), 10, 64); err == nil && id > 0 {
		f.Domaine = &models.Domaine{ID: id}
	} else {
		v["domaineId"] = "required"
	}
	if id, err := strconv.ParseInt(r.FormValue("formateurId"), 10, 64); err == nil && id > 0 {
		f.Formateur = &models.Formateur{ID: id}
	}
	return f, v
}

func (h *FormationHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, v := formationFromForm(r)
	if !v.Empty() {
		h.renderForm(w, r, "formation_form.html", map[string]any{"Violations": v, "Formation": f})
		return
	}
	created, err := h.API.CreateFormation(r.Context(), f)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		h.renderForm(w, r, "formation_form.html", map[string]any{"Error": errorMessage(r, err), "Formation": f})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/formations/%d", created.ID), http.StatusSeeOther)
}

func (h *FormationHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	formation, err := h.API.GetFormation(r.Context(), id)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formation_form.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.renderForm(w, r, "formation_form.html", map[string]any{"Formation": formation, "Editing": true})
}

func (h *FormationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f, v := formationFromForm(r)
	f.ID = id
	if !v.Empty() {
		h.renderForm(w, r, "formation_form.html", map[string]any{"Violations": v, "Formation": f, "Editing": true})
		return
	}
	if _, err := h.API.UpdateFormation(r.Context(), id, f); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		h.renderForm(w, r, "formation_form.html", map[string]any{"Error": errorMessage(r, err), "Formation": f, "Editing": true})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/formations/%d", id), http.StatusSeeOther)
}

func (h *FormationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.DeleteFormation(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formations.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	http.Redirect(w, r, "/formations?flash="+url.QueryEscape(i18n.T(langOf(r), "deleted")), http.StatusSeeOther)
}

// EnrollDialog opens the enrollment view. Candidates are recomputed on every
// open; a dialog never shows yesterday's availability.
func (h *FormationHandler) EnrollDialog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c, err := enroll.LoadCandidates(r.Context(), h.API, id)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formation_enroll.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "formation_enroll.html", map[string]any{
		"Formation": c.Formation,
		"Available": c.Available,
	})
}

// EnrollConfirm runs the sequential write loop over the posted selection and
// reports the outcome, including partial success ("N of M added"). On
// failure the dialog re-renders with the selection preserved so the operator
// can retry without re-picking.
func (h *FormationHandler) EnrollConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sel := enroll.NewSelection()
	for _, raw := range r.PostForm["participantIds"] {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		sel.Toggle(pid)
	}

	// Membership may have moved since the dialog was opened; diff again so
	// the duplicate guard works against fresh state.
	c, err := enroll.LoadCandidates(r.Context(), h.API, id)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "formation_enroll.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}

	lang := langOf(r)
	out := enroll.Confirm(r.Context(), h.API, c, sel)
	if errors.Is(out.Err, enroll.ErrEmptySelection) {
		render(w, r, "formation_enroll.html", map[string]any{
			"Formation": c.Formation,
			"Available": c.Available,
			"Error":     i18n.T(lang, "empty_selection"),
		})
		return
	}
	if out.Err != nil {
		if h.authFailed(w, r, out.Err) {
			return
		}
		msg := fmt.Sprintf(i18n.T(lang, "partial_added"), len(out.Added), out.Requested)
		render(w, r, "formation_enroll.html", map[string]any{
			"Formation": c.Formation,
			"Available": c.Available,
			"Selection": sel,
			"Partial":   msg,
			"Error":     errorMessage(r, out.Err),
		})
		return
	}
	flash := fmt.Sprintf(i18n.T(lang, "all_added"), len(out.Added))
	http.Redirect(w, r, fmt.Sprintf("/formations/%d?flash=%s", id, url.QueryEscape(flash)), http.StatusSeeOther)
}

// RemoveParticipant withdraws one member; local state is only what the next
// fetch shows, so success simply redirects back to the details page.
func (h *FormationHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	pid, err := pathID(r, "participant_id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.Withdraw(r.Context(), pid, id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		formation, ferr := h.API.GetFormation(r.Context(), id)
		data := map[string]any{"Error": i18n.T(langOf(r), "remove_failed") + " " + errorMessage(r, err)}
		if ferr == nil {
			data["Formation"] = formation
		}
		render(w, r, "formation_details.html", data)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/formations/%d?flash=%s", id, url.QueryEscape(i18n.T(langOf(r), "deleted"))), http.StatusSeeOther)
}
