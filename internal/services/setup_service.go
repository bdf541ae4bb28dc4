package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
)

type SetupInput struct {
	Email        string
	Password     string
	BusinessName string
}

// SetupService creates the very first shopper account. It only ever succeeds
// while the users table is empty; the guard is a query, not an in-memory flag,
// so it stays correct across restarts.
type SetupService struct{ DB *gorm.DB }

func NewSetupService(db *gorm.DB) *SetupService { return &SetupService{DB: db} }

var ErrSetupComplete = errors.New("setup_already_completed")

func (s *SetupService) IsComplete() (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Run creates the first user and its default business config as one
// transaction. The existence check is re-done inside the transaction so two
// concurrent setup calls cannot both succeed.
func (s *SetupService) Run(in SetupInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: in.Email, HashedPassword: string(hash), IsActive: true}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSetupComplete
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		name := in.BusinessName
		if name == "" {
			name = models.DefaultBusinessName
		}
		cfg := models.BusinessConfig{
			UserID:       user.ID,
			BusinessName: name,
			BaseCurrency: models.DefaultBaseCurrency,
			ContactEmail: in.Email,
		}
		return tx.Create(&cfg).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
