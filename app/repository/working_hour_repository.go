package repository

import (
	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// workingHourRepository implements the WorkingHourRepository interface
type workingHourRepository struct {
	db *gorm.DB
}

// NewWorkingHourRepository creates a new working hour repository instance
func NewWorkingHourRepository(db *gorm.DB) WorkingHourRepository {
	return &workingHourRepository{db: db}
}

func (r *workingHourRepository) Create(hour *models.WorkingHour) error {
	return r.db.Create(hour).Error
}

func (r *workingHourRepository) GetByMerchantID(merchantID uint) ([]models.WorkingHour, error) {
	var hours []models.WorkingHour
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("weekday ASC, opens_at ASC").Find(&hours).Error
	return hours, err
}

func (r *workingHourRepository) Update(hour *models.WorkingHour) error {
	return r.db.Save(hour).Error
}

func (r *workingHourRepository) Delete(id uint) error {
	return r.db.Delete(&models.WorkingHour{}, id).Error
}
