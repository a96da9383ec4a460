package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

type fakeRepository struct {
	merchants map[uint]*models.Merchant
}

func newFakeRepository(merchants ...*models.Merchant) *fakeRepository {
	r := &fakeRepository{merchants: make(map[uint]*models.Merchant)}
	for _, m := range merchants {
		r.merchants[m.ID] = m
	}
	return r
}

func (r *fakeRepository) GetMerchant(id uint) (*models.Merchant, error) {
	m, ok := r.merchants[id]
	if !ok {
		return nil, ErrMerchantNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeRepository) UpdateMerchantFields(id uint, fields map[string]interface{}) (*models.Merchant, error) {
	m, ok := r.merchants[id]
	if !ok {
		return nil, ErrMerchantNotFound
	}
	for col, val := range fields {
		switch col {
		case "status":
			m.Status = val.(string)
		case "payment_status":
			m.PaymentStatus = val.(string)
		case "plan_status":
			m.PlanStatus = val.(string)
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

func (r *fakeRepository) ListExpiredActive(now time.Time) ([]models.Merchant, error) {
	var out []models.Merchant
	for _, m := range r.merchants {
		if m.Status == models.MerchantStatusActive && m.AccessEndDate != nil && !m.AccessEndDate.After(now) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeRepository) DemoteIfStillExpired(id uint, now time.Time) (bool, error) {
	m, ok := r.merchants[id]
	if !ok {
		return false, nil
	}
	if m.Status != models.MerchantStatusActive || m.AccessEndDate == nil || m.AccessEndDate.After(now) {
		return false, nil
	}
	m.Status = models.MerchantStatusPaymentPending
	return true, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var day0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

func pendingMerchant(id uint) *models.Merchant {
	return &models.Merchant{
		ID:                 id,
		Status:             models.MerchantStatusPending,
		PaymentStatus:      models.PaymentStatusPending,
		PlanStatus:         models.PlanFree,
		AccessDurationDays: models.DefaultAccessDurationDays,
	}
}

func activeMerchant(id uint, start, end time.Time, duration int) *models.Merchant {
	return &models.Merchant{
		ID:                 id,
		Status:             models.MerchantStatusActive,
		PaymentStatus:      models.PaymentStatusPaid,
		PlanStatus:         models.PlanVIP,
		AccessStartDate:    &start,
		AccessEndDate:      &end,
		AccessDurationDays: duration,
	}
}

func TestGrantAccess_SetsWindowFromNow(t *testing.T) {
	repo := newFakeRepository(pendingMerchant(1))
	svc := NewService(repo).WithClock(fixedClock(day(0)))

	m, err := svc.GrantAccess(context.Background(), 1, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, models.MerchantStatusActive, m.Status)
	assert.Equal(t, models.PaymentStatusPaid, m.PaymentStatus)
	require.NotNil(t, m.AccessStartDate)
	require.NotNil(t, m.AccessEndDate)
	assert.Equal(t, day(0), *m.AccessStartDate)
	assert.Equal(t, day(10), *m.AccessEndDate)
	assert.Equal(t, 10, m.AccessDurationDays)
	require.NotNil(t, m.NextPaymentDue)
	assert.Equal(t, day(20), *m.NextPaymentDue)
}

func TestGrantAccess_FeeOverride(t *testing.T) {
	repo := newFakeRepository(pendingMerchant(1))
	svc := NewService(repo).WithClock(fixedClock(day(0)))

	fee := int64(9900)
	m, err := svc.GrantAccess(context.Background(), 1, 30, &fee)
	require.NoError(t, err)
	assert.Equal(t, int64(9900), m.MonthlyFee)
}

func TestGrantAccess_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.GrantAccess(context.Background(), 42, 30, nil)
	assert.ErrorIs(t, err, ErrMerchantNotFound)
	assert.Empty(t, repo.merchants)
}

func TestGrantAccess_RejectsNonPositiveDuration(t *testing.T) {
	repo := newFakeRepository(pendingMerchant(1))
	svc := NewService(repo)

	_, err := svc.GrantAccess(context.Background(), 1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestRenewAccess_BeforeExpiryKeepsRemainingDays(t *testing.T) {
	// Window ends on day 30, renewal on day 20 with duration 30: the new end
	// is day 60, not day 50.
	repo := newFakeRepository(activeMerchant(1, day(0), day(30), 30))
	svc := NewService(repo).WithClock(fixedClock(day(20)))

	m, err := svc.RenewAccess(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, day(60), *m.AccessEndDate)
	assert.Equal(t, day(90), *m.NextPaymentDue)
	assert.Equal(t, day(0), *m.AccessStartDate)
	assert.Equal(t, day(20), *m.LastPaymentDate)
}

func TestRenewAccess_AfterExpiryStartsFromNow(t *testing.T) {
	// Window ended on day 30, renewal only on day 45: the new cycle runs from
	// the renewal moment, no retroactive days.
	m0 := activeMerchant(1, day(0), day(30), 30)
	m0.Status = models.MerchantStatusPaymentPending
	repo := newFakeRepository(m0)
	svc := NewService(repo).WithClock(fixedClock(day(45)))

	m, err := svc.RenewAccess(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.MerchantStatusActive, m.Status)
	assert.Equal(t, day(75), *m.AccessEndDate)
}

func TestRenewAccess_EndDateNeverMovesBackward(t *testing.T) {
	repo := newFakeRepository(activeMerchant(1, day(0), day(30), 30))
	svc := NewService(repo).WithClock(fixedClock(day(20)))

	m, err := svc.RenewAccess(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, m.AccessEndDate.Before(day(30)))
}

func TestRenewAccess_DefaultsDurationWhenUnset(t *testing.T) {
	m0 := pendingMerchant(1)
	m0.AccessDurationDays = 0
	repo := newFakeRepository(m0)
	svc := NewService(repo).WithClock(fixedClock(day(0)))

	m, err := svc.RenewAccess(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAccessDurationDays, m.AccessDurationDays)
	assert.Equal(t, day(30), *m.AccessEndDate)
	// No prior window: the start date is set to the renewal moment.
	require.NotNil(t, m.AccessStartDate)
	assert.Equal(t, day(0), *m.AccessStartDate)
}

func TestRenewAccess_NotFound(t *testing.T) {
	svc := NewService(newFakeRepository())
	_, err := svc.RenewAccess(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestSuspendAccess_PreservesWindowAndPaymentStatus(t *testing.T) {
	repo := newFakeRepository(activeMerchant(1, day(0), day(30), 30))
	svc := NewService(repo)

	m, err := svc.SuspendAccess(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.MerchantStatusPaymentPending, m.Status)
	assert.Equal(t, models.PaymentStatusPaid, m.PaymentStatus)
	assert.Equal(t, day(30), *m.AccessEndDate)
}

func TestSweepExpiredAccess_DemotesAndIsIdempotent(t *testing.T) {
	repo := newFakeRepository(
		activeMerchant(1, day(0), day(10), 10),  // expired on day 11
		activeMerchant(2, day(0), day(30), 30),  // still live
		activeMerchant(3, day(0), day(11), 11),  // boundary: end == now counts as expired
		pendingMerchant(4),
	)
	svc := NewService(repo).WithClock(fixedClock(day(11)))

	count, err := svc.SweepExpiredAccess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, models.MerchantStatusPaymentPending, repo.merchants[1].Status)
	assert.Equal(t, models.MerchantStatusActive, repo.merchants[2].Status)
	assert.Equal(t, models.MerchantStatusPaymentPending, repo.merchants[3].Status)
	assert.Equal(t, models.MerchantStatusPending, repo.merchants[4].Status)

	// Window untouched on demoted merchants.
	assert.Equal(t, day(10), *repo.merchants[1].AccessEndDate)

	count, err = svc.SweepExpiredAccess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTrialScenario_GrantThenSweep(t *testing.T) {
	// Trial signup on day 0 with a 10 day window; on day 11 the sweep demotes
	// the merchant to payment_pending.
	repo := newFakeRepository(pendingMerchant(1))
	svc := NewService(repo).WithClock(fixedClock(day(0)))

	m, err := svc.GrantAccess(context.Background(), 1, models.TrialAccessDurationDays, nil)
	require.NoError(t, err)
	assert.Equal(t, day(10), *m.AccessEndDate)

	svc.WithClock(fixedClock(day(11)))
	count, err := svc.SweepExpiredAccess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, models.MerchantStatusPaymentPending, repo.merchants[1].Status)
}

func TestSetMonthlyFee(t *testing.T) {
	repo := newFakeRepository(activeMerchant(1, day(0), day(30), 30))
	svc := NewService(repo)

	m, err := svc.SetMonthlyFee(context.Background(), 1, 14900)
	require.NoError(t, err)
	assert.Equal(t, int64(14900), m.MonthlyFee)
	assert.Equal(t, day(30), *m.AccessEndDate)
}
