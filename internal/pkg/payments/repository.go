package payments

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
)

// ErrChargeNotFound is returned when the referenced charge does not exist.
var ErrChargeNotFound = errors.New("pix charge not found")

// Repository provides DB operations used by the payments service.
type Repository interface {
	GetMerchant(id uint) (*models.Merchant, error)
	SetMerchantPlan(id uint, plan string) error
	CreateCharge(charge *models.PixCharge) error
	GetChargeByTxID(txID string) (*models.PixCharge, error)
	MarkChargeTerminalIfPending(txID, status string, paidAt *time.Time) (bool, error)
	CreateWebhookEventIfNotExists(event *models.PixWebhookEvent) (bool, *models.PixWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payments repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetMerchant(id uint) (*models.Merchant, error) {
	var m models.Merchant
	err := r.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lifecycle.ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) SetMerchantPlan(id uint, plan string) error {
	tx := r.db.Model(&models.Merchant{}).Where("id = ?", id).Update("plan_status", plan)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return lifecycle.ErrMerchantNotFound
	}
	return nil
}

func (r *gormRepository) CreateCharge(charge *models.PixCharge) error {
	return r.db.Create(charge).Error
}

func (r *gormRepository) GetChargeByTxID(txID string) (*models.PixCharge, error) {
	var charge models.PixCharge
	err := r.db.Where("tx_id = ?", txID).First(&charge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChargeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// MarkChargeTerminalIfPending moves a charge out of pending exactly once.
// Redelivered webhooks and concurrent pollers race on this update; only the
// winner sees RowsAffected > 0 and runs the side effects.
func (r *gormRepository) MarkChargeTerminalIfPending(txID, status string, paidAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	tx := r.db.Model(&models.PixCharge{}).
		Where("tx_id = ? AND status = ?", txID, models.ChargeStatusPending).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.PixWebhookEvent) (bool, *models.PixWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PixWebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.PixWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
