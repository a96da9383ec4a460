package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Client is an end customer of a salon.
type Client struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MerchantID uint           `gorm:"not null;index" json:"merchant_id"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email      string         `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email,max=200"`
	Phone      string         `gorm:"type:varchar(30);default:null" json:"phone" validate:"max=30"`
	Notes      string         `gorm:"type:text;default:null" json:"notes" validate:"max=1000"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Client) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
