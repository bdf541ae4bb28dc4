package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessConfig holds the invoice/display metadata of a shopper. One row per
// user, created lazily with defaults on first read (see store.ConfigStore).
type BusinessConfig struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	BusinessName string    `gorm:"not null;default:'My Shopper'" json:"business_name"`
	LogoURL      string    `json:"logo_url"`
	BaseCurrency string    `gorm:"not null;default:'USD'" json:"base_currency"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	DefaultBusinessName = "My Shopper"
	DefaultBaseCurrency = "USD"
)

func (c *BusinessConfig) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
