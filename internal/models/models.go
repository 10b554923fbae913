// Package models holds the client-side view of the entities served by the
// gestion-formation REST API. The server is authoritative: these structs only
// mirror its JSON shapes, field names included (the API speaks French).
package models

import "time"

// Domaine is a skill/subject category attached to a Formation.
type Domaine struct {
	ID      int64  `json:"id"`
	Libelle string `json:"libelle"`
}

// Profil categorizes a Participant (e.g. "Ingénieur", "Technicien").
type Profil struct {
	ID      int64  `json:"id"`
	Libelle string `json:"libelle"`
}

// Employeur is the organization a Formateur works for.
type Employeur struct {
	ID      int64  `json:"id"`
	Nom     string `json:"nom"`
	Adresse string `json:"adresse,omitempty"`
	Tel     string `json:"tel,omitempty"`
}

// Formateur is a trainer, optionally linked to an Employeur.
type Formateur struct {
	ID        int64      `json:"id"`
	Nom       string     `json:"nom"`
	Prenom    string     `json:"prenom"`
	Email     string     `json:"email,omitempty"`
	Tel       string     `json:"tel,omitempty"`
	Employeur *Employeur `json:"employeur,omitempty"`
}

// Formation is a scheduled training session. DateFin is derived server-side
// from DateDebut and Duree; the client never computes or submits it.
type Formation struct {
	ID           int64         `json:"id"`
	Titre        string        `json:"titre"`
	Annee        int           `json:"annee"`
	Duree        int           `json:"duree"` // days
	Budget       float64       `json:"budget"`
	Lieu         string        `json:"lieu,omitempty"`
	DateDebut    string        `json:"dateDebut,omitempty"` // "2006-01-02"
	DateFin      string        `json:"dateFin,omitempty"`
	Domaine      *Domaine      `json:"domaine,omitempty"`
	Formateur    *Formateur    `json:"formateur,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
}

// Active reports whether the formation's end date is still in the future.
// Unparseable or missing dates count as not active.
func (f Formation) Active(now time.Time) bool {
	if f.DateFin == "" {
		return false
	}
	end, err := time.Parse("2006-01-02", f.DateFin)
	if err != nil {
		return false
	}
	return end.After(now)
}

// Participant is a trainee. Formations is only populated when the detail
// endpoint is queried with includeFormations=true.
type Participant struct {
	ID         int64       `json:"id"`
	Nom        string      `json:"nom"`
	Prenom     string      `json:"prenom"`
	Email      string      `json:"email"`
	Tel        string      `json:"tel,omitempty"`
	Structure  string      `json:"structure,omitempty"` // CENTRALE or REGIONALE
	Profil     *Profil     `json:"profil,omitempty"`
	Formations []Formation `json:"formations,omitempty"`
}

// Utilisateur is an account of the back office itself, carrying the role
// string consumed by the gate package.
type Utilisateur struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// Credentials is the login/register request body.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // register only
}

// AuthResponse is returned by the auth endpoints on success.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// DomaineBudget is one row of the budget-by-domaine aggregate.
type DomaineBudget struct {
	Domaine string  `json:"domaine"`
	Budget  float64 `json:"budget"`
}

// Statistics aggregates the read-only dashboard counters.
type Statistics struct {
	Formations   int64           `json:"formations"`
	Participants int64           `json:"participants"`
	Budget       []DomaineBudget `json:"budget"`
}
