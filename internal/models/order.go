package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus values as stored in the orders table.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPurchased OrderStatus = "PURCHASED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the known order statuses.
// Transitions between statuses are deliberately unconstrained.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPurchased, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order belongs to a client. The user id is stored redundantly so tenant
// filtering never needs a join through clients.
//
// The four totals are fixed at creation time as the sums of the corresponding
// item amounts; items are immutable once the order exists.
type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        OrderStatus `gorm:"not null;default:'PENDING'" json:"status"`
	PaymentBank   string      `json:"payment_bank"`
	PaymentMethod string      `json:"payment_method"`
	Date          time.Time   `json:"date"`
	Notes         string      `json:"notes"`

	TotalTax        float64 `gorm:"not null;default:0" json:"total_tax"`
	TotalCommission float64 `gorm:"not null;default:0" json:"total_commission"`
	TotalProfit     float64 `gorm:"not null;default:0" json:"total_profit"`
	TotalAmount     float64 `gorm:"not null;default:0" json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a line within an order. The input fields come from the request;
// the four amount fields are computed once by the pricing service.
type OrderItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Name              string    `gorm:"not null" json:"name"`
	BasePrice         float64   `gorm:"not null" json:"base_price"`
	TaxPercent        float64   `gorm:"not null;default:0" json:"tax_percent"`
	CommissionPercent float64   `gorm:"not null;default:0" json:"commission_percent"`
	Quantity          int       `gorm:"not null;default:1" json:"quantity"`

	TaxAmount        float64 `gorm:"not null;default:0" json:"tax_amount"`
	CommissionAmount float64 `gorm:"not null;default:0" json:"commission_amount"`
	FinalPrice       float64 `gorm:"not null;default:0" json:"final_price"`
	ProfitAmount     float64 `gorm:"not null;default:0" json:"profit_amount"`
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
