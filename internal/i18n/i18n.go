package i18n

import "strings"

// Default language is Spanish: the product surface (and its users) are
// Spanish-speaking; English is served on explicit Accept-Language preference.
const defaultLang = "es"

var messages = map[string]map[string]string{
	"es": {
		"required":                "Requerido",
		"must_be_non_negative":    "No puede ser negativo",
		"below_minimum":           "Por debajo del mínimo",
		"invalid_email":           "Email inválido",
		"invalid_status":          "Estado desconocido",
		"invalid_date":            "Fecha inválida (use AAAA-MM-DD)",
		"empty_items":             "El pedido debe tener al menos un artículo",
		"incorrect_credentials":   "Email o contraseña incorrectos",
		"inactive_user":           "Usuario inactivo",
		"setup_already_completed": "La configuración inicial ya fue realizada",
	},
	"en": {
		"required":                "Required",
		"must_be_non_negative":    "Must not be negative",
		"below_minimum":           "Below minimum",
		"invalid_email":           "Invalid email",
		"invalid_status":          "Unknown status",
		"invalid_date":            "Invalid date (use YYYY-MM-DD)",
		"empty_items":             "Order needs at least one item",
		"incorrect_credentials":   "Incorrect email or password",
		"inactive_user":           "Inactive user",
		"setup_already_completed": "Initial setup already completed",
	},
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if i := strings.Index(lang, "-"); i > 0 {
			lang = lang[:i]
		}
		if _, ok := messages[lang]; ok {
			return lang
		}
	}
	return defaultLang
}

// T translates a message code. Unknown languages fall back to Spanish;
// unknown codes fall back to the code itself so nothing is silently lost.
func T(lang, code string) string {
	m, ok := messages[lang]
	if !ok {
		m = messages[defaultLang]
	}
	if s, ok := m[code]; ok {
		return s
	}
	if s, ok := messages[defaultLang][code]; ok {
		return s
	}
	return code
}

// Localize translates every code in a field violation map.
func Localize(lang string, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, code := range fields {
		out[k] = T(lang, code)
	}
	return out
}
