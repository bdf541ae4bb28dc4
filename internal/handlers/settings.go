package handlers

import (
	"net/http"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/store"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/validation"
)

type SettingsHandler struct{ Store *store.ConfigStore }

func NewSettingsHandler(s *store.ConfigStore) *SettingsHandler { return &SettingsHandler{Store: s} }

// Get: GET /api/v1/settings. First read creates the default config, so a
// "missing settings" state is never observable.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.GetOrCreate(currentUser(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, cfg)
}

type settingsUpdateRequest struct {
	BusinessName *string `json:"business_name"`
	LogoURL      *string `json:"logo_url"`
	BaseCurrency *string `json:"base_currency"`
	ContactEmail *string `json:"contact_email"`
}

// Update: PUT /api/v1/settings, partial semantics via pointer fields.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	if req.BusinessName != nil {
		validation.Required("business_name", *req.BusinessName, v)
	}
	if req.BaseCurrency != nil {
		validation.Required("base_currency", *req.BaseCurrency, v)
	}
	if req.ContactEmail != nil {
		validation.Email("contact_email", *req.ContactEmail, v)
	}
	if !v.Empty() {
		validationError(w, r, v)
		return
	}
	cfg, err := h.Store.Update(currentUser(r), store.ConfigPatch{
		BusinessName: req.BusinessName,
		LogoURL:      req.LogoURL,
		BaseCurrency: req.BaseCurrency,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, cfg)
}
