package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/services"
)

// OrderStore is the tenant-scoped access layer for orders and their items.
type OrderStore struct{ DB *gorm.DB }

func NewOrderStore(db *gorm.DB) *OrderStore { return &OrderStore{DB: db} }

func (s *OrderStore) List(userID uuid.UUID, offset, limit int) ([]models.Order, error) {
	offset, limit = clampPage(offset, limit)
	var orders []models.Order
	err := s.DB.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) Get(userID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).Preload("Items").First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderMeta is the non-derived part of an order creation request.
type OrderMeta struct {
	PaymentBank   string
	PaymentMethod string
	Date          time.Time
	Notes         string
}

// Create prices the requested items and persists the order with all of its
// lines in one transaction; a failure partway leaves no rows behind. The
// client must belong to the same user, otherwise the order is rejected as
// not-found.
func (s *OrderStore) Create(userID, clientID uuid.UUID, meta OrderMeta, items []services.ItemInput) (*models.Order, error) {
	priced, totals, err := services.PriceOrder(items)
	if err != nil {
		return nil, err
	}
	date := meta.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	order := models.Order{
		ClientID:        clientID,
		UserID:          userID,
		Status:          models.StatusPending,
		PaymentBank:     meta.PaymentBank,
		PaymentMethod:   meta.PaymentMethod,
		Date:            date,
		Notes:           meta.Notes,
		TotalTax:        totals.Tax,
		TotalCommission: totals.Commission,
		TotalProfit:     totals.Profit,
		TotalAmount:     totals.Amount,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Client{}).
			Where("id = ? AND user_id = ?", clientID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		lines := make([]models.OrderItem, 0, len(priced))
		for _, p := range priced {
			lines = append(lines, models.OrderItem{
				OrderID:           order.ID,
				Name:              p.Name,
				BasePrice:         p.BasePrice,
				TaxPercent:        p.TaxPercent,
				CommissionPercent: p.CommissionPercent,
				Quantity:          p.Quantity,
				TaxAmount:         p.TaxAmount,
				CommissionAmount:  p.CommissionAmount,
				FinalPrice:        p.FinalPrice,
				ProfitAmount:      p.ProfitAmount,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		order.Items = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// StatusPatch carries the PATCH .../status payload; nil means unchanged.
type StatusPatch struct {
	Status *models.OrderStatus
	Notes  *string
}

// UpdateStatus applies a status and/or notes change. Any known status value is
// accepted regardless of the current one; transitions are not constrained.
func (s *OrderStore) UpdateStatus(userID, id uuid.UUID, patch StatusPatch) (*models.Order, error) {
	order, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if err := s.DB.Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order and its items in one transaction.
func (s *OrderStore) Delete(userID, id uuid.UUID) error {
	order, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", order.ID).Error
	})
}
