package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
)

// ClientStore is the tenant-scoped access layer for clients. Every method
// takes the owning user id and folds it into the query predicate.
type ClientStore struct{ DB *gorm.DB }

func NewClientStore(db *gorm.DB) *ClientStore { return &ClientStore{DB: db} }

func (s *ClientStore) List(userID uuid.UUID, offset, limit int) ([]models.Client, error) {
	offset, limit = clampPage(offset, limit)
	var clients []models.Client
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *ClientStore) Get(userID, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientStore) Create(userID uuid.UUID, client *models.Client) error {
	client.ID = uuid.Nil
	client.UserID = userID
	return s.DB.Create(client).Error
}

// ClientPatch carries partial update fields; nil means "leave unchanged".
type ClientPatch struct {
	Name     *string
	LastName *string
	Email    *string
	Phone    *string
	Address  *string
}

func (s *ClientStore) Update(userID, id uuid.UUID, patch ClientPatch) (*models.Client, error) {
	client, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		client.Name = *patch.Name
	}
	if patch.LastName != nil {
		client.LastName = *patch.LastName
	}
	if patch.Email != nil {
		client.Email = *patch.Email
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}
	if err := s.DB.Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client and its orders. Dependents are deleted explicitly,
// innermost first, in a single transaction; no reliance on ORM cascade config.
func (s *ClientStore) Delete(userID, id uuid.UUID) error {
	client, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Order{}).Select("id").Where("client_id = ?", client.ID)
		if err := tx.Where("order_id IN (?)", sub).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(client).Error
	})
}
