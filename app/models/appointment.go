package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

var (
	ErrInvalidWorkingHours     = errors.New("closing time must be after opening time")
	ErrAppointmentEndsTooEarly = errors.New("appointment must end after it starts")
)

// Appointment is a booked time slot for a client with an employee.
type Appointment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MerchantID uint           `gorm:"not null;index:idx_appointments_merchant_start,priority:1" json:"merchant_id"`
	ClientID   uint           `gorm:"not null;index" json:"client_id"`
	EmployeeID uint           `gorm:"not null;index" json:"employee_id"`
	ServiceID  uint           `gorm:"not null;index" json:"service_id"`
	StartsAt   time.Time      `gorm:"not null;index:idx_appointments_merchant_start,priority:2" json:"starts_at"`
	EndsAt     time.Time      `gorm:"not null" json:"ends_at"`
	Status     string         `gorm:"type:varchar(32);not null;default:'scheduled'" json:"status" validate:"oneof=scheduled confirmed completed cancelled"`
	Notes      string         `gorm:"type:text;default:null" json:"notes" validate:"max=1000"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Appointment) Validate() error {
	v := validator.New()

	if err := v.Struct(a); err != nil {
		return err
	}
	if !a.EndsAt.After(a.StartsAt) {
		return ErrAppointmentEndsTooEarly
	}
	return nil
}

// Overlaps reports whether two half-open intervals [StartsAt, EndsAt) collide.
func (a *Appointment) Overlaps(other *Appointment) bool {
	return a.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(a.EndsAt)
}
