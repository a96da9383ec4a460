package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MerchantStatusPending        = "pending"
	MerchantStatusActive         = "active"
	MerchantStatusPaymentPending = "payment_pending"
	MerchantStatusInactive       = "inactive"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusTrial   = "trial"
	PaymentStatusPaid    = "paid"
)

const (
	PlanFree = "free"
	PlanVIP  = "vip"
)

const (
	// DefaultAccessDurationDays is the length of one paid access cycle.
	DefaultAccessDurationDays = 30
	// TrialAccessDurationDays is the shorter window granted at free signup.
	TrialAccessDurationDays = 10
)

// Merchant is a salon tenant. Status gates booking features, PaymentStatus
// records the billing state and PlanStatus the selected tier; the three move
// independently of each other.
type Merchant struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	PublicID           string         `gorm:"type:varchar(36);uniqueIndex" json:"public_id"`
	Name               string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	SalonName          string         `gorm:"type:varchar(150)" json:"salon_name" validate:"required,min=2,max=150"`
	Email              string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password           string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Phone              string         `gorm:"type:varchar(30);default:null" json:"phone" validate:"max=30"`
	Status             string         `gorm:"type:varchar(32);not null;default:'pending';index:idx_merchants_status_access_end,priority:1" json:"status" validate:"oneof=pending active payment_pending inactive"`
	PaymentStatus      string         `gorm:"type:varchar(32);not null;default:'pending'" json:"payment_status" validate:"oneof=pending trial paid"`
	PlanStatus         string         `gorm:"type:varchar(32);not null;default:'free'" json:"plan_status" validate:"oneof=free vip"`
	AccessStartDate    *time.Time     `gorm:"type:timestamp;default:null" json:"access_start_date,omitempty"`
	AccessEndDate      *time.Time     `gorm:"type:timestamp;default:null;index:idx_merchants_status_access_end,priority:2" json:"access_end_date,omitempty"`
	AccessDurationDays int            `gorm:"not null;default:30" json:"access_duration_days"`
	LastPaymentDate    *time.Time     `gorm:"type:timestamp;default:null" json:"last_payment_date,omitempty"`
	NextPaymentDue     *time.Time     `gorm:"type:timestamp;default:null" json:"next_payment_due,omitempty"`
	MonthlyFee         int64          `gorm:"not null;default:0" json:"monthly_fee"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Merchant) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

// CreateMerchant builds a new merchant in the initial pending/free state.
// Validation runs against the plaintext password; hashing afterwards would
// hide a too-short password behind the 60-char bcrypt output.
func CreateMerchant(name, salonName, email, password string) (*Merchant, error) {
	m := &Merchant{
		PublicID:           uuid.NewString(),
		Name:               name,
		SalonName:          salonName,
		Email:              email,
		Password:           password,
		Status:             MerchantStatusPending,
		PaymentStatus:      PaymentStatusPending,
		PlanStatus:         PlanFree,
		AccessDurationDays: DefaultAccessDurationDays,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	m.Password = pw

	return m, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPassword verifies if the provided password matches the stored hash.
func (m *Merchant) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) == nil
}

// HasLiveAccess reports whether booking features are usable at the given
// instant. An end date exactly equal to now counts as expired.
func (m *Merchant) HasLiveAccess(now time.Time) bool {
	if m.Status != MerchantStatusActive {
		return false
	}
	if m.AccessEndDate == nil {
		return true
	}
	return m.AccessEndDate.After(now)
}
