package models

import "time"

const (
	ChargeStatusPending   = "pending"
	ChargeStatusApproved  = "approved"
	ChargeStatusRejected  = "rejected"
	ChargeStatusCancelled = "cancelled"
)

// PixCharge mirrors one PIX charge created at the payment gateway for a VIP
// plan activation or renewal. TxID is the gateway transaction id and the
// dedup key for confirmations.
type PixCharge struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MerchantID    uint       `gorm:"not null;index" json:"merchant_id"`
	TxID          string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"tx_id"`
	AmountCents   int64      `gorm:"not null" json:"amount_cents"`
	QRCodePayload string     `gorm:"type:text" json:"qr_code_payload"`
	Status        string     `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	ExpiresAt     *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	PaidAt        *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsTerminal reports whether the charge reached a final state.
func (c *PixCharge) IsTerminal() bool {
	switch c.Status {
	case ChargeStatusApproved, ChargeStatusRejected, ChargeStatusCancelled:
		return true
	default:
		return false
	}
}
