package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/httpx"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/pdf"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/services"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/store"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/validation"
)

type OrderHandler struct {
	Orders  *store.OrderStore
	Clients *store.ClientStore
	Config  *store.ConfigStore
}

func NewOrderHandler(orders *store.OrderStore, clients *store.ClientStore, config *store.ConfigStore) *OrderHandler {
	return &OrderHandler{Orders: orders, Clients: clients, Config: config}
}

// List: GET /api/v1/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	orders, err := h.Orders.List(currentUser(r), offset, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

type orderItemRequest struct {
	Name              string  `json:"name"`
	BasePrice         float64 `json:"base_price"`
	TaxPercent        float64 `json:"tax_percent"`
	CommissionPercent float64 `json:"commission_percent"`
	// Pointer so an omitted quantity defaults to 1 while an explicit 0 is
	// rejected as below minimum.
	Quantity *int `json:"quantity"`
}

type orderCreateRequest struct {
	ClientID      uuid.UUID          `json:"client_id"`
	PaymentBank   string             `json:"payment_bank"`
	PaymentMethod string             `json:"payment_method"`
	Date          string             `json:"date"`
	Notes         string             `json:"notes"`
	Items         []orderItemRequest `json:"items"`
}

// Create: POST /api/v1/orders. Prices all items and persists order plus lines
// atomically; any invalid item rejects the whole order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	if req.ClientID == uuid.Nil {
		v["client_id"] = "required"
	}
	if len(req.Items) == 0 {
		v["items"] = "empty_items"
	}
	items := make([]services.ItemInput, 0, len(req.Items))
	for i, it := range req.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		validation.Required(field("name"), it.Name, v)
		validation.NonNegativeFloat(field("base_price"), it.BasePrice, v)
		validation.NonNegativeFloat(field("tax_percent"), it.TaxPercent, v)
		validation.NonNegativeFloat(field("commission_percent"), it.CommissionPercent, v)
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
			validation.MinInt(field("quantity"), qty, 1, v)
		}
		items = append(items, services.ItemInput{
			Name:              it.Name,
			BasePrice:         it.BasePrice,
			TaxPercent:        it.TaxPercent,
			CommissionPercent: it.CommissionPercent,
			Quantity:          qty,
		})
	}
	var meta store.OrderMeta
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			v["date"] = "invalid_date"
		} else {
			meta.Date = d
		}
	}
	if !v.Empty() {
		validationError(w, r, v)
		return
	}
	meta.PaymentBank = req.PaymentBank
	meta.PaymentMethod = req.PaymentMethod
	meta.Notes = req.Notes

	order, err := h.Orders.Create(currentUser(r), req.ClientID, meta, items)
	if err == store.ErrNotFound {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

type statusUpdateRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateStatus: PATCH /api/v1/orders/{id}/status. Any known status value is
// accepted in any order; unknown values are validation failures.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch := store.StatusPatch{Notes: req.Notes}
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		if !models.ValidStatus(status) {
			validationError(w, r, map[string]string{"status": "invalid_status"})
			return
		}
		patch.Status = &status
	}
	order, err := h.Orders.UpdateStatus(currentUser(r), id, patch)
	if err == store.ErrNotFound {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Delete: DELETE /api/v1/orders/{id}. Removes the order together with its
// items.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.Orders.Delete(currentUser(r), id)
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

// PDF: GET /api/v1/orders/{id}/pdf. Loads the authorized order, business
// config and client, flattens them to display values and streams the invoice.
func (h *OrderHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	userID := currentUser(r)
	order, err := h.Orders.Get(userID, id)
	if err == store.ErrNotFound {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	cfg, err := h.Config.GetOrCreate(userID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	client, err := h.Clients.Get(userID, order.ClientID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}

	shortID := order.ID.String()[:8]
	items := make([]pdf.LineItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, pdf.LineItem{
			Name:       it.Name,
			Quantity:   it.Quantity,
			BasePrice:  services.RoundCents(it.BasePrice),
			FinalPrice: services.RoundCents(it.FinalPrice),
		})
	}
	data, genErr := pdf.OrderInvoice(
		pdf.InvoiceData{
			Number:          shortID,
			Date:            order.Date.Format("2006-01-02"),
			Status:          string(order.Status),
			PaymentMethod:   order.PaymentMethod,
			Notes:           order.Notes,
			Currency:        cfg.BaseCurrency,
			Items:           items,
			TotalTax:        services.RoundCents(order.TotalTax),
			TotalCommission: services.RoundCents(order.TotalCommission),
			TotalAmount:     services.RoundCents(order.TotalAmount),
		},
		pdf.BusinessData{Name: cfg.BusinessName, ContactEmail: cfg.ContactEmail, LogoURL: cfg.LogoURL},
		pdf.ClientData{Name: client.Name, LastName: client.LastName, Email: client.Email, Address: client.Address},
	)
	if genErr != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice_`+shortID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
