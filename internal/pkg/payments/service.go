package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/env"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/mail"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/pix"
)

const webhookProvider = "pix"

// Gateway is the slice of the PIX client the payments service depends on.
type Gateway interface {
	CreateCharge(ctx context.Context, payerEmail string, amountCents int64) (*pix.Charge, error)
	GetChargeStatus(ctx context.Context, txID string) (string, error)
}

// Service orchestrates the VIP activation flow: charge creation, poll/webhook
// driven confirmation and the resulting lifecycle transitions.
type Service struct {
	repo      Repository
	gateway   Gateway
	lifecycle *lifecycle.Service
	now       func() time.Time

	vipDurationDays int
	vipFeeCents     int64

	notifyPayment func(*models.Merchant)
	notifyRenewal func(*models.Merchant)
	newPoller     func() *pix.Poller
}

// NewService creates a payments service from injected collaborators.
func NewService(repo Repository, gateway Gateway, lc *lifecycle.Service) *Service {
	s := &Service{
		repo:            repo,
		gateway:         gateway,
		lifecycle:       lc,
		now:             time.Now,
		vipDurationDays: vipDurationFromEnv(),
		vipFeeCents:     vipFeeFromEnv(),
		notifyPayment:   mail.SendPaymentConfirmationEmail,
		notifyRenewal:   mail.SendRenewalConfirmationEmail,
	}
	s.newPoller = func() *pix.Poller {
		return pix.NewPoller(s.gateway.GetChargeStatus)
	}
	return s
}

// NewServiceFromDB creates a payments service from a GORM DB handle with the
// env-configured gateway client.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), pix.NewClientFromEnv(), lifecycle.NewServiceFromDB(db))
}

func vipDurationFromEnv() int {
	if v, err := strconv.Atoi(env.GetEnv("PLAN_VIP_DURATION_DAYS", "")); err == nil && v > 0 {
		return v
	}
	return models.DefaultAccessDurationDays
}

func vipFeeFromEnv() int64 {
	if v, err := strconv.ParseInt(env.GetEnv("PLAN_VIP_FEE_CENTS", ""), 10, 64); err == nil && v > 0 {
		return v
	}
	return 9900
}

// StartVipCharge creates a gateway charge for the merchant's VIP plan and
// records it locally in pending state. The merchant stays pending until the
// charge is confirmed; the returned QR payload is surfaced to the UI.
func (s *Service) StartVipCharge(ctx context.Context, merchantID uint) (*models.PixCharge, error) {
	m, err := s.repo.GetMerchant(merchantID)
	if err != nil {
		return nil, err
	}

	amount := m.MonthlyFee
	if amount <= 0 {
		amount = s.vipFeeCents
	}

	charge, err := s.gateway.CreateCharge(ctx, m.Email, amount)
	if err != nil {
		return nil, err
	}

	record := &models.PixCharge{
		MerchantID:    m.ID,
		TxID:          charge.TxID,
		AmountCents:   amount,
		QRCodePayload: charge.QRCodePayload,
		Status:        models.ChargeStatusPending,
		ExpiresAt:     charge.ExpiresAt,
	}
	if err := s.repo.CreateCharge(record); err != nil {
		return nil, err
	}
	if err := s.repo.SetMerchantPlan(m.ID, models.PlanVIP); err != nil {
		return nil, err
	}
	return record, nil
}

// CheckCharge re-reads the gateway status for a pending charge and funnels a
// terminal answer into ConfirmCharge. Gateway errors leave the charge pending.
func (s *Service) CheckCharge(ctx context.Context, txID string) (*models.PixCharge, error) {
	charge, err := s.repo.GetChargeByTxID(txID)
	if err != nil {
		return nil, err
	}
	if charge.IsTerminal() {
		return charge, nil
	}

	status, err := s.gateway.GetChargeStatus(ctx, txID)
	if err != nil {
		log.Warnf("[Payments] status check for charge %s failed, keeping it pending: %v", txID, err)
		return charge, nil
	}
	if !pix.IsTerminalStatus(status) {
		return charge, nil
	}
	return s.ConfirmCharge(ctx, txID, status)
}

// ConfirmCharge applies a terminal gateway status to a charge exactly once.
// On approval the merchant is activated (first payment) or renewed (repeat
// payment) and the matching confirmation email is fired; on rejection or
// cancellation the merchant simply stays pending and may retry.
func (s *Service) ConfirmCharge(ctx context.Context, txID, status string) (*models.PixCharge, error) {
	normalized := pix.NormalizeChargeStatus(status)
	if !pix.IsTerminalStatus(normalized) {
		return s.repo.GetChargeByTxID(txID)
	}

	var paidAt *time.Time
	if normalized == pix.StatusApproved {
		now := s.now()
		paidAt = &now
	}

	transitioned, err := s.repo.MarkChargeTerminalIfPending(txID, normalized, paidAt)
	if err != nil {
		return nil, err
	}
	charge, err := s.repo.GetChargeByTxID(txID)
	if err != nil {
		return nil, err
	}
	if !transitioned || normalized != pix.StatusApproved {
		return charge, nil
	}

	m, err := s.repo.GetMerchant(charge.MerchantID)
	if err != nil {
		return charge, err
	}

	// A trial merchant paying their first VIP charge starts a fresh paid
	// cycle; renewing would inherit the short trial duration and never record
	// the fee.
	firstActivation := m.AccessStartDate == nil || m.PaymentStatus == models.PaymentStatusTrial
	if firstActivation {
		fee := charge.AmountCents
		m, err = s.lifecycle.GrantAccess(ctx, m.ID, s.vipDurationDays, &fee)
	} else {
		m, err = s.lifecycle.RenewAccess(ctx, m.ID)
	}
	if err != nil {
		return charge, err
	}

	if firstActivation {
		go s.notifyPayment(m)
	} else {
		go s.notifyRenewal(m)
	}
	return charge, nil
}

// WatchCharge polls the gateway in the background until the charge settles or
// the polling ceiling elapses, then funnels the outcome into ConfirmCharge.
// The webhook path remains authoritative; whichever arrives first wins and
// the loser becomes a no-op. The watcher runs detached from any request
// context: it outlives the handler that started it, and the polling ceiling
// bounds its lifetime.
func (s *Service) WatchCharge(txID string) {
	go func() {
		ctx := context.Background()
		status, err := s.newPoller().Wait(ctx, txID)
		if err != nil {
			log.Errorf("[Payments] poll loop for charge %s failed: %v", txID, err)
			return
		}
		if !pix.IsTerminalStatus(status) {
			return
		}
		if _, err := s.ConfirmCharge(ctx, txID, status); err != nil {
			log.Errorf("[Payments] confirming polled charge %s failed: %v", txID, err)
		}
	}()
}

type webhookPayload struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	TxID      string `json:"txid"`
	Status    string `json:"status"`
}

// HandleWebhook records a gateway webhook delivery idempotently and, for
// first deliveries with a valid signature, applies the reported status.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	secret := env.GetEnv("PIX_WEBHOOK_SECRET", "")
	signatureValid := pix.VerifyWebhookSignature(payload, signatureHeader, secret)

	var in webhookPayload
	if err := json.Unmarshal(payload, &in); err != nil {
		return err
	}

	eventID := in.EventID
	if eventID == "" {
		sum := sha256.Sum256(payload)
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.PixWebhookEvent{
		Provider:        webhookProvider,
		ProviderEventID: eventID,
		EventType:       in.EventType,
		PayloadJSON:     string(payload),
		SignatureValid:  signatureValid,
	}
	created, stored, err := s.repo.CreateWebhookEventIfNotExists(event)
	if err != nil {
		return err
	}
	if !created {
		// Redelivery of an event we already have.
		return nil
	}
	if !signatureValid {
		return s.repo.MarkWebhookProcessed(stored.ID, "invalid signature")
	}

	_, err = s.ConfirmCharge(ctx, in.TxID, in.Status)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	if markErr := s.repo.MarkWebhookProcessed(stored.ID, errMsg); markErr != nil {
		log.Errorf("[Payments] marking webhook %d processed failed: %v", stored.ID, markErr)
	}
	return err
}
