package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/pix"
)

type fakeStore struct {
	merchants map[uint]*models.Merchant
	charges   map[string]*models.PixCharge
	events    map[string]*models.PixWebhookEvent
	nextEvent uint
}

func newFakeStore(merchants ...*models.Merchant) *fakeStore {
	s := &fakeStore{
		merchants: make(map[uint]*models.Merchant),
		charges:   make(map[string]*models.PixCharge),
		events:    make(map[string]*models.PixWebhookEvent),
	}
	for _, m := range merchants {
		s.merchants[m.ID] = m
	}
	return s
}

func (s *fakeStore) GetMerchant(id uint) (*models.Merchant, error) {
	m, ok := s.merchants[id]
	if !ok {
		return nil, lifecycle.ErrMerchantNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *fakeStore) SetMerchantPlan(id uint, plan string) error {
	m, ok := s.merchants[id]
	if !ok {
		return lifecycle.ErrMerchantNotFound
	}
	m.PlanStatus = plan
	return nil
}

func (s *fakeStore) CreateCharge(charge *models.PixCharge) error {
	s.charges[charge.TxID] = charge
	return nil
}

func (s *fakeStore) GetChargeByTxID(txID string) (*models.PixCharge, error) {
	c, ok := s.charges[txID]
	if !ok {
		return nil, ErrChargeNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *fakeStore) MarkChargeTerminalIfPending(txID, status string, paidAt *time.Time) (bool, error) {
	c, ok := s.charges[txID]
	if !ok || c.Status != models.ChargeStatusPending {
		return false, nil
	}
	c.Status = status
	c.PaidAt = paidAt
	return true, nil
}

func (s *fakeStore) CreateWebhookEventIfNotExists(event *models.PixWebhookEvent) (bool, *models.PixWebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if stored, ok := s.events[key]; ok {
		return false, stored, nil
	}
	s.nextEvent++
	event.ID = s.nextEvent
	s.events[key] = event
	return true, event, nil
}

func (s *fakeStore) MarkWebhookProcessed(id uint, processingError string) error {
	for _, ev := range s.events {
		if ev.ID == id {
			now := time.Now()
			ev.ProcessedAt = &now
			ev.ProcessingError = processingError
			return nil
		}
	}
	return errors.New("event not found")
}

// lifecycleStore adapts the fake store to the lifecycle repository so both
// services mutate the same in-memory merchants.
type lifecycleStore struct{ *fakeStore }

func (s lifecycleStore) UpdateMerchantFields(id uint, fields map[string]interface{}) (*models.Merchant, error) {
	m, ok := s.merchants[id]
	if !ok {
		return nil, lifecycle.ErrMerchantNotFound
	}
	for col, val := range fields {
		switch col {
		case "status":
			m.Status = val.(string)
		case "payment_status":
			m.PaymentStatus = val.(string)
		case "access_start_date":
			t := val.(time.Time)
			m.AccessStartDate = &t
		case "access_end_date":
			t := val.(time.Time)
			m.AccessEndDate = &t
		case "access_duration_days":
			m.AccessDurationDays = val.(int)
		case "last_payment_date":
			t := val.(time.Time)
			m.LastPaymentDate = &t
		case "next_payment_due":
			t := val.(time.Time)
			m.NextPaymentDue = &t
		case "monthly_fee":
			m.MonthlyFee = val.(int64)
		}
	}
	copied := *m
	return &copied, nil
}

func (s lifecycleStore) ListExpiredActive(now time.Time) ([]models.Merchant, error) {
	return nil, nil
}

func (s lifecycleStore) DemoteIfStillExpired(id uint, now time.Time) (bool, error) {
	return false, nil
}

type fakeGateway struct {
	charge    *pix.Charge
	createErr error
	status    string
	statusErr error
}

func (g *fakeGateway) CreateCharge(ctx context.Context, payerEmail string, amountCents int64) (*pix.Charge, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.charge, nil
}

func (g *fakeGateway) GetChargeStatus(ctx context.Context, txID string) (string, error) {
	if g.statusErr != nil {
		return "", g.statusErr
	}
	return g.status, nil
}

func newTestService(store *fakeStore, gw *fakeGateway) (*Service, chan string) {
	notified := make(chan string, 4)
	lc := lifecycle.NewService(lifecycleStore{store})
	svc := NewService(store, gw, lc)
	svc.vipDurationDays = 30
	svc.vipFeeCents = 9900
	svc.notifyPayment = func(m *models.Merchant) { notified <- "payment" }
	svc.notifyRenewal = func(m *models.Merchant) { notified <- "renewal" }
	return svc, notified
}

func waitNotification(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case kind := <-ch:
		return kind
	case <-time.After(time.Second):
		t.Fatalf("expected a notification")
		return ""
	}
}

func vipMerchant(id uint) *models.Merchant {
	return &models.Merchant{
		ID:            id,
		Name:          "Ana",
		SalonName:     "Studio Ana",
		Email:         "ana@example.com",
		Status:        models.MerchantStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PlanStatus:    models.PlanFree,
	}
}

func TestStartVipCharge_CreatesPendingChargeAndMarksPlan(t *testing.T) {
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", QRCodePayload: "0002...", AmountCents: 9900}}
	svc, _ := newTestService(store, gw)

	charge, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", charge.TxID)
	assert.Equal(t, models.ChargeStatusPending, charge.Status)
	assert.Equal(t, int64(9900), charge.AmountCents)
	assert.Equal(t, models.PlanVIP, store.merchants[1].PlanStatus)
	// Merchant is still pending until the charge is confirmed.
	assert.Equal(t, models.MerchantStatusPending, store.merchants[1].Status)
}

func TestStartVipCharge_GatewayErrorSurfacesToCaller(t *testing.T) {
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{createErr: errors.New("gateway down")}
	svc, _ := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	assert.Error(t, err)
	assert.Empty(t, store.charges)
}

func TestConfirmCharge_ApprovalActivatesMerchantOnce(t *testing.T) {
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}}
	svc, notified := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	charge, err := svc.ConfirmCharge(context.Background(), "tx-1", "approved")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusApproved, charge.Status)

	m := store.merchants[1]
	assert.Equal(t, models.MerchantStatusActive, m.Status)
	assert.Equal(t, models.PaymentStatusPaid, m.PaymentStatus)
	assert.Equal(t, int64(9900), m.MonthlyFee)
	require.NotNil(t, m.AccessEndDate)
	assert.Equal(t, "payment", waitNotification(t, notified))

	// Second confirmation is a no-op: the window stays put.
	end := *m.AccessEndDate
	_, err = svc.ConfirmCharge(context.Background(), "tx-1", "approved")
	require.NoError(t, err)
	assert.Equal(t, end, *store.merchants[1].AccessEndDate)
	select {
	case <-notified:
		t.Fatalf("expected no second notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConfirmCharge_TrialUpgradeStartsFullVipCycle(t *testing.T) {
	// A merchant halfway through the 10-day trial pays for VIP. The payment
	// must open a fresh 30-day paid cycle and record the fee, not renew the
	// trial window by another 10 days.
	m := vipMerchant(1)
	start := time.Now().AddDate(0, 0, -5)
	end := time.Now().AddDate(0, 0, 5)
	m.Status = models.MerchantStatusActive
	m.PaymentStatus = models.PaymentStatusTrial
	m.AccessStartDate = &start
	m.AccessEndDate = &end
	m.AccessDurationDays = models.TrialAccessDurationDays
	store := newFakeStore(m)
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-trial", AmountCents: 9900}}
	svc, notified := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ConfirmCharge(context.Background(), "tx-trial", "approved")
	require.NoError(t, err)

	got := store.merchants[1]
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, 30, got.AccessDurationDays)
	assert.Equal(t, int64(9900), got.MonthlyFee)
	require.NotNil(t, got.AccessEndDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *got.AccessEndDate, time.Minute)
	assert.Equal(t, "payment", waitNotification(t, notified))
}

func TestConfirmCharge_RepeatPaymentRenews(t *testing.T) {
	m := vipMerchant(1)
	start := time.Now().AddDate(0, 0, -20)
	end := time.Now().AddDate(0, 0, 10)
	m.Status = models.MerchantStatusActive
	m.AccessStartDate = &start
	m.AccessEndDate = &end
	m.AccessDurationDays = 30
	store := newFakeStore(m)
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-2", AmountCents: 9900}}
	svc, notified := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ConfirmCharge(context.Background(), "tx-2", "paid")
	require.NoError(t, err)

	assert.Equal(t, "renewal", waitNotification(t, notified))
	// Early renewal keeps the remaining 10 days: new end ~= old end + 30d.
	assert.WithinDuration(t, end.AddDate(0, 0, 30), *store.merchants[1].AccessEndDate, time.Minute)
}

func TestConfirmCharge_RejectionLeavesMerchantPending(t *testing.T) {
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}}
	svc, notified := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	charge, err := svc.ConfirmCharge(context.Background(), "tx-1", "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusRejected, charge.Status)
	assert.Equal(t, models.MerchantStatusPending, store.merchants[1].Status)
	select {
	case <-notified:
		t.Fatalf("expected no notification on rejection")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCheckCharge_NonTerminalGatewayAnswerKeepsPending(t *testing.T) {
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}, status: "pending"}
	svc, _ := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	charge, err := svc.CheckCharge(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPending, charge.Status)
}

func TestCheckCharge_GatewayErrorIsNotTerminal(t *testing.T) {
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}, statusErr: errors.New("timeout")}
	svc, _ := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	charge, err := svc.CheckCharge(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPending, charge.Status)
}

func TestWatchCharge_ConfirmsAfterCallerIsGone(t *testing.T) {
	// The watcher must keep polling after the handler that started it has
	// returned; it runs on its own context, bounded by the polling ceiling.
	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}, status: pix.StatusApproved}
	svc, notified := newTestService(store, gw)
	svc.newPoller = func() *pix.Poller {
		p := pix.NewPoller(gw.GetChargeStatus)
		p.Interval = time.Millisecond
		p.Ceiling = time.Second
		return p
	}

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	svc.WatchCharge("tx-1")

	assert.Equal(t, "payment", waitNotification(t, notified))
	assert.Equal(t, models.MerchantStatusActive, store.merchants[1].Status)
	assert.Equal(t, models.ChargeStatusApproved, store.charges["tx-1"].Status)
}

func signWebhook(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHandleWebhook_ConfirmsAndDeduplicates(t *testing.T) {
	t.Setenv("PIX_WEBHOOK_SECRET", "hook-secret")

	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}}
	svc, notified := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	payload := []byte(`{"event_id":"evt-1","event_type":"charge.settled","txid":"tx-1","status":"approved"}`)
	sig := signWebhook(payload, "hook-secret")

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Equal(t, models.MerchantStatusActive, store.merchants[1].Status)
	assert.Equal(t, "payment", waitNotification(t, notified))

	// Redelivery is recorded once and skipped.
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, sig))
	assert.Len(t, store.events, 1)
}

func TestHandleWebhook_InvalidSignatureIsRecordedButNotApplied(t *testing.T) {
	t.Setenv("PIX_WEBHOOK_SECRET", "hook-secret")

	store := newFakeStore(vipMerchant(1))
	gw := &fakeGateway{charge: &pix.Charge{TxID: "tx-1", AmountCents: 9900}}
	svc, _ := newTestService(store, gw)

	_, err := svc.StartVipCharge(context.Background(), 1)
	require.NoError(t, err)

	payload := []byte(`{"event_id":"evt-1","txid":"tx-1","status":"approved"}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "deadbeef"))

	assert.Equal(t, models.MerchantStatusPending, store.merchants[1].Status)
	assert.Equal(t, models.ChargeStatusPending, store.charges["tx-1"].Status)
	ev := store.events["pix/evt-1"]
	require.NotNil(t, ev)
	assert.False(t, ev.SignatureValid)
	assert.Equal(t, "invalid signature", ev.ProcessingError)
}
