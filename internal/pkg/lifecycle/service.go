package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// ErrInvalidDuration is returned when a grant is requested with a
// non-positive duration.
var ErrInvalidDuration = errors.New("duration must be a positive number of days")

// Service owns the merchant subscription state and the transitions between
// pending, active, payment_pending and inactive.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a lifecycle service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a lifecycle service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WithClock overrides the time source. Used by tests and nowhere else.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GrantAccess activates a merchant with a fresh window starting now. It is
// meant for first activations; repeated calls reset the window rather than
// extend it — renewals go through RenewAccess.
func (s *Service) GrantAccess(ctx context.Context, merchantID uint, durationDays int, monthlyFee *int64) (*models.Merchant, error) {
	_ = ctx
	if durationDays <= 0 {
		return nil, ErrInvalidDuration
	}
	if _, err := s.repo.GetMerchant(merchantID); err != nil {
		return nil, err
	}

	now := s.now()
	end := now.AddDate(0, 0, durationDays)
	nextDue := end.AddDate(0, 0, durationDays)

	fields := map[string]interface{}{
		"status":               models.MerchantStatusActive,
		"payment_status":       models.PaymentStatusPaid,
		"access_start_date":    now,
		"access_end_date":      end,
		"access_duration_days": durationDays,
		"last_payment_date":    now,
		"next_payment_due":     nextDue,
	}
	if monthlyFee != nil {
		fields["monthly_fee"] = *monthlyFee
	}

	return s.repo.UpdateMerchantFields(merchantID, fields)
}

// ActivateTrial grants the short free window offered at signup. Unlike a
// paid grant the payment status is recorded as trial and the next payment
// falls due when the trial window ends.
func (s *Service) ActivateTrial(ctx context.Context, merchantID uint) (*models.Merchant, error) {
	_ = ctx
	if _, err := s.repo.GetMerchant(merchantID); err != nil {
		return nil, err
	}

	now := s.now()
	end := now.AddDate(0, 0, models.TrialAccessDurationDays)

	return s.repo.UpdateMerchantFields(merchantID, map[string]interface{}{
		"status":               models.MerchantStatusActive,
		"payment_status":       models.PaymentStatusTrial,
		"access_start_date":    now,
		"access_end_date":      end,
		"access_duration_days": models.TrialAccessDurationDays,
		"next_payment_due":     end,
	})
}

// RenewAccess extends the merchant's window by one duration cycle. The new
// window grows from max(accessEndDate, now): renewing early keeps the unused
// remaining days, renewing late starts the cycle at the renewal moment. The
// end date never moves backward.
func (s *Service) RenewAccess(ctx context.Context, merchantID uint) (*models.Merchant, error) {
	_ = ctx
	m, err := s.repo.GetMerchant(merchantID)
	if err != nil {
		return nil, err
	}

	duration := m.AccessDurationDays
	if duration <= 0 {
		duration = models.DefaultAccessDurationDays
	}

	now := s.now()
	base := now
	if m.AccessEndDate != nil && m.AccessEndDate.After(now) {
		base = *m.AccessEndDate
	}
	end := base.AddDate(0, 0, duration)
	nextDue := end.AddDate(0, 0, duration)

	fields := map[string]interface{}{
		"status":               models.MerchantStatusActive,
		"payment_status":       models.PaymentStatusPaid,
		"access_end_date":      end,
		"access_duration_days": duration,
		"last_payment_date":    now,
		"next_payment_due":     nextDue,
	}
	if m.AccessStartDate == nil {
		fields["access_start_date"] = now
	}

	return s.repo.UpdateMerchantFields(merchantID, fields)
}

// SuspendAccess demotes a merchant to payment_pending. The access window and
// payment bookkeeping stay untouched so a later renewal computes from them.
func (s *Service) SuspendAccess(ctx context.Context, merchantID uint) (*models.Merchant, error) {
	_ = ctx
	if _, err := s.repo.GetMerchant(merchantID); err != nil {
		return nil, err
	}
	return s.repo.UpdateMerchantFields(merchantID, map[string]interface{}{
		"status": models.MerchantStatusPaymentPending,
	})
}

// SetMonthlyFee overrides the per-cycle fee without touching the window.
func (s *Service) SetMonthlyFee(ctx context.Context, merchantID uint, feeCents int64) (*models.Merchant, error) {
	_ = ctx
	if _, err := s.repo.GetMerchant(merchantID); err != nil {
		return nil, err
	}
	return s.repo.UpdateMerchantFields(merchantID, map[string]interface{}{
		"monthly_fee": feeCents,
	})
}

// SweepExpiredAccess demotes every active merchant whose window has elapsed
// and returns how many were transitioned. The per-row update re-checks the
// expiry condition, so concurrent or repeated sweeps are harmless and a
// second run right after the first returns 0.
func (s *Service) SweepExpiredAccess(ctx context.Context) (int, error) {
	_ = ctx
	now := s.now()
	expired, err := s.repo.ListExpiredActive(now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range expired {
		demoted, err := s.repo.DemoteIfStillExpired(m.ID, now)
		if err != nil {
			log.Errorf("[Lifecycle] sweep: demote merchant %d failed: %v", m.ID, err)
			continue
		}
		if demoted {
			count++
		}
	}
	return count, nil
}

// IsAccessLive reports whether the merchant's booking features are usable at
// the given instant, without touching storage.
func IsAccessLive(m *models.Merchant, now time.Time) bool {
	return m != nil && m.HasLiveAccess(now)
}
