package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SalonService is a bookable service offered by a salon (cut, color, ...).
// Prices are stored in minor currency units.
type SalonService struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	MerchantID      uint           `gorm:"not null;index" json:"merchant_id"`
	Name            string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Description     string         `gorm:"type:text;default:null" json:"description" validate:"max=1000"`
	DurationMinutes int            `gorm:"not null;default:30" json:"duration_minutes" validate:"gt=0,lte=480"`
	PriceCents      int64          `gorm:"not null;default:0" json:"price_cents" validate:"gte=0"`
	Active          bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *SalonService) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
