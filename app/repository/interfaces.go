package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// MerchantRepository defines the interface for merchant-related database operations
type MerchantRepository interface {
	Create(merchant *models.Merchant) error
	GetByID(id uint) (*models.Merchant, error)
	GetByPublicID(publicID string) (*models.Merchant, error)
	GetByEmail(email string) (*models.Merchant, error)
	Update(merchant *models.Merchant) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Merchant, error)
	Count() (int64, error)
	ListByStatus(status string) ([]models.Merchant, error)
}

// ClientRepository defines the interface for client-related database operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	GetByMerchantID(merchantID uint, offset, limit int) ([]models.Client, error)
	Update(client *models.Client) error
	Delete(id uint) error
	CountByMerchantID(merchantID uint) (int64, error)
}

// EmployeeRepository defines the interface for employee-related database operations
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetByMerchantID(merchantID uint) ([]models.Employee, error)
	Update(employee *models.Employee) error
	Delete(id uint) error
	CountByMerchantID(merchantID uint) (int64, error)
}

// SalonServiceRepository defines the interface for service catalog operations
type SalonServiceRepository interface {
	Create(service *models.SalonService) error
	GetByID(id uint) (*models.SalonService, error)
	GetByMerchantID(merchantID uint) ([]models.SalonService, error)
	Update(service *models.SalonService) error
	Delete(id uint) error
	CountByMerchantID(merchantID uint) (int64, error)
}

// WorkingHourRepository defines the interface for opening hours operations
type WorkingHourRepository interface {
	Create(hour *models.WorkingHour) error
	GetByMerchantID(merchantID uint) ([]models.WorkingHour, error)
	Update(hour *models.WorkingHour) error
	Delete(id uint) error
}

// AppointmentRepository defines the interface for appointment-related database operations
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(id uint) (*models.Appointment, error)
	GetByMerchantID(merchantID uint, from, to time.Time) ([]models.Appointment, error)
	GetByEmployeeID(employeeID uint, from, to time.Time) ([]models.Appointment, error)
	Update(appointment *models.Appointment) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	FindOverlapping(employeeID uint, startsAt, endsAt time.Time) ([]models.Appointment, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Merchant     MerchantRepository
	Client       ClientRepository
	Employee     EmployeeRepository
	SalonService SalonServiceRepository
	WorkingHour  WorkingHourRepository
	Appointment  AppointmentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Merchant:     NewMerchantRepository(db),
		Client:       NewClientRepository(db),
		Employee:     NewEmployeeRepository(db),
		SalonService: NewSalonServiceRepository(db),
		WorkingHour:  NewWorkingHourRepository(db),
		Appointment:  NewAppointmentRepository(db),
	}
}
