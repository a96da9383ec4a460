package lifecycle

import (
	"errors"
	"time"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"gorm.io/gorm"
)

// ErrMerchantNotFound is returned when the referenced merchant id does not
// exist. The HTTP layer maps it to a 404.
var ErrMerchantNotFound = errors.New("merchant not found")

// Repository provides DB operations used by the lifecycle service.
type Repository interface {
	GetMerchant(id uint) (*models.Merchant, error)
	UpdateMerchantFields(id uint, fields map[string]interface{}) (*models.Merchant, error)
	ListExpiredActive(now time.Time) ([]models.Merchant, error)
	DemoteIfStillExpired(id uint, now time.Time) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a lifecycle repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetMerchant(id uint) (*models.Merchant, error) {
	var m models.Merchant
	err := r.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMerchantFields applies all given columns in a single UPDATE so a
// reader never observes a partially written access window.
func (r *gormRepository) UpdateMerchantFields(id uint, fields map[string]interface{}) (*models.Merchant, error) {
	tx := r.db.Model(&models.Merchant{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrMerchantNotFound
	}
	return r.GetMerchant(id)
}

func (r *gormRepository) ListExpiredActive(now time.Time) ([]models.Merchant, error) {
	var merchants []models.Merchant
	err := r.db.
		Where("status = ? AND access_end_date IS NOT NULL AND access_end_date <= ?", models.MerchantStatusActive, now).
		Find(&merchants).Error
	return merchants, err
}

// DemoteIfStillExpired flips one merchant to payment_pending only while the
// expiry condition still holds, so concurrent or repeated sweeps count each
// merchant once.
func (r *gormRepository) DemoteIfStillExpired(id uint, now time.Time) (bool, error) {
	tx := r.db.Model(&models.Merchant{}).
		Where("id = ? AND status = ? AND access_end_date IS NOT NULL AND access_end_date <= ?", id, models.MerchantStatusActive, now).
		Update("status", models.MerchantStatusPaymentPending)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
