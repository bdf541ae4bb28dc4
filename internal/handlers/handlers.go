package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/auth"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/i18n"
)

// currentUser returns the authenticated user id. Handlers are always mounted
// behind auth.RequireAuth, so a missing id is a wiring bug, not a user error.
func currentUser(r *http.Request) uuid.UUID {
	uid, _ := auth.UserIDFromContext(r.Context())
	return uid
}

func langFrom(r *http.Request) string {
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// pathID parses the {id} wildcard as a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads skip/limit query values, zero when absent or malformed.
func pageParams(r *http.Request) (offset, limit int) {
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return offset, limit
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// validationError writes a 400 with a localized field -> message map.
func validationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	httpx.JSONError(w, http.StatusBadRequest, "validation_error", i18n.Localize(langFrom(r), fields))
}
