package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// appointmentRepository implements the AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

func (r *appointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) GetByMerchantID(merchantID uint, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("merchant_id = ? AND starts_at >= ? AND starts_at < ?", merchantID, from, to).
		Order("starts_at ASC").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) GetByEmployeeID(employeeID uint, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("employee_id = ? AND starts_at >= ? AND starts_at < ?", employeeID, from, to).
		Order("starts_at ASC").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) Update(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *appointmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Appointment{}, id).Error
}

// FindOverlapping returns non-cancelled appointments of an employee that
// collide with the half-open interval [startsAt, endsAt).
func (r *appointmentRepository) FindOverlapping(employeeID uint, startsAt, endsAt time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.
		Where("employee_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			employeeID, models.AppointmentStatusCancelled, endsAt, startsAt).
		Find(&appointments).Error
	return appointments, err
}
