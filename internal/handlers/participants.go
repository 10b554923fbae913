package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"gestion-formations/httpx"
	"gestion-formations/i18n"
	"gestion-formations/internal/models"
	"gestion-formations/validation"
)

type ParticipantHandler struct {
	*Base
}

func NewParticipantHandler(b *Base) *ParticipantHandler { return &ParticipantHandler{Base: b} }

func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.API.ListParticipants(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadGateway, errorMessage(r, err), nil)
			return
		}
		render(w, r, "participants.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": participants, "total": len(participants)})
		return
	}
	render(w, r, "participants.html", map[string]any{"Participants": participants, "Flash": r.URL.Query().Get("flash")})
}

// View shows one participant expanded with the formations they are enrolled
// in, the symmetric side of the relationship.
func (h *ParticipantHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.API.GetParticipant(r.Context(), id, true)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "participant_details.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	render(w, r, "participant_details.html", map[string]any{"Participant": p, "Flash": r.URL.Query().Get("flash")})
}

func (h *ParticipantHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, map[string]any{})
}

func (h *ParticipantHandler) renderForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	profils, err := h.API.ListProfils(r.Context())
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		data["Error"] = errorMessage(r, err)
	} else {
		data["Profils"] = profils
	}
	render(w, r, "participant_form.html", data)
}

func participantFromForm(r *http.Request) (models.Participant, validation.Violations) {
	v := validation.Violations{}
	p := models.Participant{
		Nom:       r.FormValue("nom"),
		Prenom:    r.FormValue("prenom"),
		Email:     r.FormValue("email"),
		Tel:       r.FormValue("tel"),
		Structure: r.FormValue("structure"),
	}
	validation.Required("nom", p.Nom, v)
	validation.Required("prenom", p.Prenom, v)
	validation.Required("email", p.Email, v)
	if p.Email != "" {
		validation.Email("email", p.Email, v)
	}
	validation.Required("structure", p.Structure, v)
	if id, err := strconv.ParseInt(r.FormValue("profilId"), 10, 64); err == nil && id > 0 {
		p.Profil = &models.Profil{ID: id}
	} else {
		v["profilId"] = "required"
	}
	return p, v
}

func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, v := participantFromForm(r)
	if !v.Empty() {
		h.renderForm(w, r, map[string]any{"Violations": v, "Participant": p})
		return
	}
	created, err := h.API.CreateParticipant(r.Context(), p)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		h.renderForm(w, r, map[string]any{"Error": errorMessage(r, err), "Participant": p})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/participants/%d?flash=%s", created.ID, url.QueryEscape(i18n.T(langOf(r), "created"))), http.StatusSeeOther)
}

func (h *ParticipantHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.API.GetParticipant(r.Context(), id, false)
	if err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "participant_form.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	h.renderForm(w, r, map[string]any{"Participant": p, "Editing": true})
}

func (h *ParticipantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, v := participantFromForm(r)
	p.ID = id
	if !v.Empty() {
		h.renderForm(w, r, map[string]any{"Violations": v, "Participant": p, "Editing": true})
		return
	}
	if _, err := h.API.UpdateParticipant(r.Context(), id, p); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		h.renderForm(w, r, map[string]any{"Error": errorMessage(r, err), "Participant": p, "Editing": true})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/participants/%d?flash=%s", id, url.QueryEscape(i18n.T(langOf(r), "updated"))), http.StatusSeeOther)
}

func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.API.DeleteParticipant(r.Context(), id); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		render(w, r, "participants.html", map[string]any{"Error": errorMessage(r, err)})
		return
	}
	http.Redirect(w, r, "/participants?flash="+url.QueryEscape(i18n.T(langOf(r), "deleted")), http.StatusSeeOther)
}

// Enroll attaches this participant to one formation, the symmetric entry
// point to the formation-side dialog. A missing formation id is rejected
// before any network call.
func (h *ParticipantHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	fid, err := strconv.ParseInt(r.FormValue("formationId"), 10, 64)
	if err != nil || fid <= 0 {
		render(w, r, "participant_details.html", map[string]any{"Error": i18n.T(langOf(r), "empty_selection")})
		return
	}
	if err := h.API.Enroll(r.Context(), id, fid); err != nil {
		if h.authFailed(w, r, err) {
			return
		}
		p, perr := h.API.GetParticipant(r.Context(), id, true)
		data := map[string]any{"Error": i18n.T(langOf(r), "enroll_failed") + " " + errorMessage(r, err)}
		if perr == nil {
			data["Participant"] = p
		}
		render(w, r, "participant_details.html", data)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/participants/%d?flash=%s", id, url.QueryEscape(i18n.T(langOf(r), "created"))), http.StatusSeeOther)
}
