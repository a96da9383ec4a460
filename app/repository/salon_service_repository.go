package repository

import (
	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// salonServiceRepository implements the SalonServiceRepository interface
type salonServiceRepository struct {
	db *gorm.DB
}

// NewSalonServiceRepository creates a new service catalog repository instance
func NewSalonServiceRepository(db *gorm.DB) SalonServiceRepository {
	return &salonServiceRepository{db: db}
}

func (r *salonServiceRepository) Create(service *models.SalonService) error {
	return r.db.Create(service).Error
}

func (r *salonServiceRepository) GetByID(id uint) (*models.SalonService, error) {
	var service models.SalonService
	err := r.db.First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *salonServiceRepository) GetByMerchantID(merchantID uint) ([]models.SalonService, error) {
	var services []models.SalonService
	err := r.db.Where("merchant_id = ?", merchantID).Order("name ASC").Find(&services).Error
	return services, err
}

func (r *salonServiceRepository) Update(service *models.SalonService) error {
	return r.db.Save(service).Error
}

func (r *salonServiceRepository) Delete(id uint) error {
	return r.db.Delete(&models.SalonService{}, id).Error
}

func (r *salonServiceRepository) CountByMerchantID(merchantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SalonService{}).Where("merchant_id = ?", merchantID).Count(&count).Error
	return count, err
}
