package validation

import "strings"

// Violations maps a field name to an error code. Codes are localized at the
// HTTP boundary via the i18n package.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_be_non_negative"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}

// Email is a light shape check, not RFC validation.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 || strings.ContainsAny(value, " \t") {
		v[field] = "invalid_email"
	}
}
