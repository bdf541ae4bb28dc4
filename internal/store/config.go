package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
)

// ConfigStore manages the one-to-one business config of a user. Reads use
// fetch-or-default-and-insert semantics so callers never observe a missing
// config.
type ConfigStore struct{ DB *gorm.DB }

func NewConfigStore(db *gorm.DB) *ConfigStore { return &ConfigStore{DB: db} }

// GetOrCreate returns the user's config, inserting a default-valued row on
// first read. Idempotent: a second read returns the same row.
func (s *ConfigStore) GetOrCreate(userID uuid.UUID) (*models.BusinessConfig, error) {
	var cfg models.BusinessConfig
	err := s.DB.Where("user_id = ?", userID).First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cfg = models.BusinessConfig{
		UserID:       userID,
		BusinessName: models.DefaultBusinessName,
		BaseCurrency: models.DefaultBaseCurrency,
	}
	if err := s.DB.Create(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigPatch carries partial update fields; nil means unchanged.
type ConfigPatch struct {
	BusinessName *string
	LogoURL      *string
	BaseCurrency *string
	ContactEmail *string
}

func (s *ConfigStore) Update(userID uuid.UUID, patch ConfigPatch) (*models.BusinessConfig, error) {
	cfg, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if patch.BusinessName != nil {
		cfg.BusinessName = *patch.BusinessName
	}
	if patch.LogoURL != nil {
		cfg.LogoURL = *patch.LogoURL
	}
	if patch.BaseCurrency != nil {
		cfg.BaseCurrency = *patch.BaseCurrency
	}
	if patch.ContactEmail != nil {
		cfg.ContactEmail = *patch.ContactEmail
	}
	if err := s.DB.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}
