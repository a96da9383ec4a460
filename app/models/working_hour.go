package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// WorkingHour is one opening interval of a salon on a given weekday.
// EmployeeID is optional; when zero the interval applies to the whole salon.
// OpensAt/ClosesAt are "HH:MM" in the salon's local time.
type WorkingHour struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MerchantID uint      `gorm:"not null;index" json:"merchant_id"`
	EmployeeID uint      `gorm:"index;default:0" json:"employee_id,omitempty"`
	Weekday    int       `gorm:"not null" json:"weekday" validate:"gte=0,lte=6"`
	OpensAt    string    `gorm:"type:varchar(5);not null" json:"opens_at" validate:"required,len=5"`
	ClosesAt   string    `gorm:"type:varchar(5);not null" json:"closes_at" validate:"required,len=5"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *WorkingHour) Validate() error {
	v := validator.New()

	if err := v.Struct(w); err != nil {
		return err
	}
	return validateInterval(w.OpensAt, w.ClosesAt)
}

func validateInterval(opens, closes string) error {
	o, err := time.Parse("15:04", opens)
	if err != nil {
		return err
	}
	c, err := time.Parse("15:04", closes)
	if err != nil {
		return err
	}
	if !c.After(o) {
		return ErrInvalidWorkingHours
	}
	return nil
}
