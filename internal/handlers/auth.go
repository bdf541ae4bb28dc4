package handlers

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/auth"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/i18n"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/services"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/validation"
)

type AuthHandler struct {
	DB       *gorm.DB
	Setup    *services.SetupService
	TokenTTL time.Duration
}

func NewAuthHandler(db *gorm.DB, ttl time.Duration) *AuthHandler {
	return &AuthHandler{DB: db, Setup: services.NewSetupService(db), TokenTTL: ttl}
}

type setupAdminRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
}

// SetupAdmin creates the first shopper account. Only works while no user
// exists; afterwards it conflicts, permanently.
func (h *AuthHandler) SetupAdmin(w http.ResponseWriter, r *http.Request) {
	var req setupAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.BusinessName = strings.TrimSpace(req.BusinessName)

	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	validation.Required("password", req.Password, v)
	validation.Required("business_name", req.BusinessName, v)
	validation.Email("email", req.Email, v)
	if !v.Empty() {
		validationError(w, r, v)
		return
	}

	user, err := h.Setup.Run(services.SetupInput{
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
	})
	if err == services.ErrSetupComplete {
		httpx.JSONError(w, http.StatusConflict, "setup_already_completed", i18n.T(langFrom(r), "setup_already_completed"))
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{
		"message": "Admin user " + user.Email + " created successfully",
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Accepts the OAuth2 password
// form (username/password fields) or the same shape as JSON.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var email, password string
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		email = req.Username
		if email == "" {
			email = req.Email
		}
		password = req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		email = r.FormValue("username")
		password = r.FormValue("password")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		validationError(w, r, map[string]string{"username": "required", "password": "required"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "incorrect_credentials", i18n.T(langFrom(r), "incorrect_credentials"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		httpx.JSONError(w, http.StatusBadRequest, "incorrect_credentials", i18n.T(langFrom(r), "incorrect_credentials"))
		return
	}
	if !user.IsActive {
		httpx.JSONError(w, http.StatusBadRequest, "inactive_user", i18n.T(langFrom(r), "inactive_user"))
		return
	}

	token, err := auth.CreateToken(user.ID, h.TokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "token_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
