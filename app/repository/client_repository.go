package repository

import (
	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// clientRepository implements the ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByMerchantID(merchantID uint, offset, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("name ASC").Offset(offset).Limit(limit).Find(&clients).Error
	return clients, err
}

func (r *clientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

func (r *clientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Client{}, id).Error
}

func (r *clientRepository) CountByMerchantID(merchantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Where("merchant_id = ?", merchantID).Count(&count).Error
	return count, err
}
