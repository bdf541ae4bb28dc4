package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/store"
)

type DashboardHandler struct{ Store *store.DashboardStore }

func NewDashboardHandler(s *store.DashboardStore) *DashboardHandler {
	return &DashboardHandler{Store: s}
}

// Metrics: GET /api/v1/dashboard/metrics?month=&year=
// Defaults to the current month and year.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_month", nil)
			return
		}
		month = n
	}
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_year", nil)
			return
		}
		year = n
	}
	m, err := h.Store.Metrics(currentUser(r), month, year)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

// BestClients: GET /api/v1/dashboard/best-clients?limit=
func (h *DashboardHandler) BestClients(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := h.Store.BestClients(currentUser(r), limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	if rows == nil {
		rows = []store.BestClient{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}
