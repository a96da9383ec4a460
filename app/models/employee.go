package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Employee is a staff member of a salon who can be assigned appointments.
type Employee struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MerchantID uint           `gorm:"not null;index" json:"merchant_id"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email      string         `gorm:"type:varchar(200);default:null" json:"email" validate:"omitempty,email,max=200"`
	Phone      string         `gorm:"type:varchar(30);default:null" json:"phone" validate:"max=30"`
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Employee) Validate() error {
	v := validator.New()

	return v.Struct(e)
}
