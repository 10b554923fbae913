// Package validation checks form fields before any network call is made.
// Violations carry i18n codes, not prose; the view layer translates them.
package validation

import (
	"strconv"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func IntRange(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Email checks the minimal local@domain shape; the server stays authoritative.
func Email(field, value string, v Violations) {
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 || strings.Count(value, "@") != 1 {
		v[field] = "invalid_email"
	}
}

// Year validates a year form field within the given bounds.
func Year(field, value string, minYear, maxYear int, v Violations) int {
	y, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v[field] = "invalid_year"
		return 0
	}
	if y < minYear || y > maxYear {
		v[field] = "out_of_range"
	}
	return y
}

// Date validates a "2006-01-02" form field and returns it unchanged.
func Date(field, value string, v Violations) string {
	value = strings.TrimSpace(value)
	if len(value) != 10 || value[4] != '-' || value[7] != '-' {
		v[field] = "invalid_date"
		return value
	}
	for i, r := range value {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			v[field] = "invalid_date"
			return value
		}
	}
	return value
}
