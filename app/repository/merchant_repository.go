package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// ErrDuplicateEmail is returned when the unique email index rejects a create.
var ErrDuplicateEmail = errors.New("merchant email already registered")

// merchantRepository implements the MerchantRepository interface
type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository instance
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

// Create creates a new merchant in the database. The unique index on email is
// the source of truth for duplicates; a pre-read would race with it.
func (r *merchantRepository) Create(merchant *models.Merchant) error {
	if err := r.db.Create(merchant).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// isDuplicateKey recognizes a unique index violation both through GORM's
// translated error and through the raw MySQL error code.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// GetByID retrieves a merchant by their ID
func (r *merchantRepository) GetByID(id uint) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.First(&merchant, id).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// GetByPublicID retrieves a merchant by their public UUID
func (r *merchantRepository) GetByPublicID(publicID string) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.Where("public_id = ?", publicID).First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// GetByEmail retrieves a merchant by their email address
func (r *merchantRepository) GetByEmail(email string) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.Where("email = ?", email).First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// Update saves the full merchant record
func (r *merchantRepository) Update(merchant *models.Merchant) error {
	return r.db.Save(merchant).Error
}

// Delete soft-deletes a merchant
func (r *merchantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Merchant{}, id).Error
}

// List returns merchants with pagination, newest first
func (r *merchantRepository) List(offset, limit int) ([]models.Merchant, error) {
	var merchants []models.Merchant
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&merchants).Error
	return merchants, err
}

// Count returns the total number of merchants
func (r *merchantRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Merchant{}).Count(&count).Error
	return count, err
}

// ListByStatus returns all merchants in the given lifecycle status
func (r *merchantRepository) ListByStatus(status string) ([]models.Merchant, error) {
	var merchants []models.Merchant
	err := r.db.Where("status = ?", status).Find(&merchants).Error
	return merchants, err
}
