package repository

import (
	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// employeeRepository implements the EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository instance
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByMerchantID(merchantID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("merchant_id = ?", merchantID).Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Employee{}, id).Error
}

func (r *employeeRepository) CountByMerchantID(merchantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).Where("merchant_id = ?", merchantID).Count(&count).Error
	return count, err
}
