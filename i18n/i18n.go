// Package i18n provides the translation table for the back office. French is
// the default and the fallback: an unknown language falls back to the French
// entry, an unknown code falls back to the code itself so missing entries
// stay visible instead of rendering blank.
package i18n

import "strings"

const defaultLang = "fr"

var translations = map[string]map[string]string{
	"fr": {
		"required":          "Requis",
		"must_be_positive":  "Doit être positif",
		"out_of_range":      "Hors limites",
		"invalid_email":     "Email invalide",
		"invalid_year":      "Année invalide",
		"invalid_date":      "Date invalide",
		"generic_error":     "Une erreur est survenue, veuillez réessayer.",
		"login_failed":      "Login ou mot de passe invalide",
		"partial_added":     "%d participant(s) sur %d ajouté(s) avant l'échec.",
		"all_added":         "%d participant(s) ajouté(s).",
		"none_available":    "Aucun participant disponible à ajouter.",
		"empty_selection":   "Sélectionnez au moins un participant.",
		"enroll_failed":     "Erreur lors de l'ajout des participants.",
		"remove_failed":     "Erreur lors de la suppression du participant.",
		"not_found":         "Introuvable",
		"deleted":           "Supprimé avec succès",
		"admin_undeletable": "Impossible de supprimer un administrateur.",
		"created":           "Ajouté avec succès",
		"updated":           "Modifié avec succès",
		"forbidden":         "Accès refusé",
		"forbidden_hint":    "Vous n'avez pas les droits nécessaires pour cette action.",
	},
	"en": {
		"required":          "Required",
		"must_be_positive":  "Must be positive",
		"out_of_range":      "Out of range",
		"invalid_email":     "Invalid email",
		"invalid_year":      "Invalid year",
		"invalid_date":      "Invalid date",
		"generic_error":     "Something went wrong, please retry.",
		"login_failed":      "Invalid login or password",
		"partial_added":     "%d of %d participant(s) added before the failure.",
		"all_added":         "%d participant(s) added.",
		"none_available":    "No participant available to add.",
		"empty_selection":   "Select at least one participant.",
		"enroll_failed":     "Failed to add participants.",
		"remove_failed":     "Failed to remove the participant.",
		"not_found":         "Not found",
		"deleted":           "Deleted successfully",
		"admin_undeletable": "Cannot delete an administrator.",
		"created":           "Created successfully",
		"updated":           "Updated successfully",
		"forbidden":         "Access denied",
		"forbidden_hint":    "You do not have the permissions required for this action.",
	},
}

// T translates code for lang, falling back to French, then to the code.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[defaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(lang, "-;"); i >= 0 {
			lang = lang[:i]
		}
		if _, ok := translations[lang]; ok {
			return lang
		}
	}
	return defaultLang
}
