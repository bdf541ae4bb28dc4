package handlers

import (
	"net/http"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/store"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/validation"
)

type ClientHandler struct{ Store *store.ClientStore }

func NewClientHandler(s *store.ClientStore) *ClientHandler { return &ClientHandler{Store: s} }

// List: GET /api/v1/clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	clients, err := h.Store.List(currentUser(r), offset, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

type clientCreateRequest struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Create: POST /api/v1/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("last_name", req.LastName, v)
	validation.Email("email", req.Email, v)
	if !v.Empty() {
		validationError(w, r, v)
		return
	}
	client := models.Client{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := h.Store.Create(currentUser(r), &client); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Get: GET /api/v1/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	client, err := h.Store.Get(currentUser(r), id)
	if err == store.ErrNotFound {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

type clientUpdateRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// Update: PUT /api/v1/clients/{id}. Partial semantics: absent fields stay
// unchanged; provided fields replace the stored value.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	if req.Name != nil {
		validation.Required("name", *req.Name, v)
	}
	if req.LastName != nil {
		validation.Required("last_name", *req.LastName, v)
	}
	if req.Email != nil {
		validation.Email("email", *req.Email, v)
	}
	if !v.Empty() {
		validationError(w, r, v)
		return
	}
	client, err := h.Store.Update(currentUser(r), id, store.ClientPatch{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err == store.ErrNotFound {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /api/v1/clients/{id}. Cascades to the client's orders.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.Store.Delete(currentUser(r), id)
	if err == store.ErrNotFound {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
