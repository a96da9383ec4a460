package scheduler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/database"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/env"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/lifecycle"
	"github.com/RafaelMoura/SalonFlow/internal/pkg/mail"
)

// How far ahead of next_payment_due the reminder email goes out.
const reminderLeadDays = 5

// Manager runs the periodic background tasks: the access expiry sweep and the
// payment-due reminder pass.
type Manager struct {
	sweepInterval    time.Duration
	reminderInterval time.Duration

	sweep  func(ctx context.Context) (int, error)
	remind func(ctx context.Context) error

	sweepTicker    *time.Ticker
	reminderTicker *time.Ticker
	stopCh         chan struct{}
	wg             sync.WaitGroup
	mu             sync.Mutex
	running        bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global scheduler (singleton) wired to the database.
func GetManager() *Manager {
	managerOnce.Do(func() {
		lc := lifecycle.NewServiceFromDB(database.GetDB())
		globalManager = &Manager{
			sweepInterval:    intervalFromEnv("SWEEP_INTERVAL_MINUTES", 60),
			reminderInterval: intervalFromEnv("REMINDER_INTERVAL_MINUTES", 24*60),
			sweep:            lc.SweepExpiredAccess,
			remind:           runReminderOnce,
		}
	})
	return globalManager
}

// NewManager builds a scheduler with injected tasks. Used by tests.
func NewManager(sweepInterval, reminderInterval time.Duration, sweep func(ctx context.Context) (int, error), remind func(ctx context.Context) error) *Manager {
	return &Manager{
		sweepInterval:    sweepInterval,
		reminderInterval: reminderInterval,
		sweep:            sweep,
		remind:           remind,
	}
}

func intervalFromEnv(key string, defMinutes int) time.Duration {
	if v, err := strconv.Atoi(env.GetEnv(key, "")); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return time.Duration(defMinutes) * time.Minute
}

// Start launches the background workers.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so the manager can be
	// restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[Scheduler] Starting background tasks")

	m.sweepTicker = time.NewTicker(m.sweepInterval)
	m.wg.Add(1)
	go m.sweepWorker(m.stopCh)

	m.reminderTicker = time.NewTicker(m.reminderInterval)
	m.wg.Add(1)
	go m.reminderWorker(m.stopCh)

	log.Info("[Scheduler] Started successfully")
}

// Stop stops the background workers and waits for them to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Scheduler] Stopping background tasks...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}
	if m.reminderTicker != nil {
		m.reminderTicker.Stop()
	}

	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	m.wg.Wait()

	log.Info("[Scheduler] Stopped successfully")
}

func (m *Manager) sweepWorker(stopCh <-chan struct{}) {
	defer m.wg.Done()

	for {
		select {
		case <-stopCh:
			return
		case <-m.sweepTicker.C:
			count, err := m.sweep(context.Background())
			if err != nil {
				log.Errorf("[Scheduler] expiry sweep failed: %v", err)
				continue
			}
			if count > 0 {
				log.Infof("[Scheduler] expiry sweep demoted %d merchant(s) to payment_pending", count)
			}
		}
	}
}

func (m *Manager) reminderWorker(stopCh <-chan struct{}) {
	defer m.wg.Done()

	for {
		select {
		case <-stopCh:
			return
		case <-m.reminderTicker.C:
			if err := m.remind(context.Background()); err != nil {
				log.Errorf("[Scheduler] payment reminder pass failed: %v", err)
			}
		}
	}
}

// runReminderOnce mails every active merchant whose next payment falls due
// within the lead window. Delivery is best-effort.
func runReminderOnce(ctx context.Context) error {
	_ = ctx
	db := database.GetDB()

	now := time.Now()
	horizon := now.AddDate(0, 0, reminderLeadDays)

	var merchants []models.Merchant
	err := db.
		Where("status = ? AND next_payment_due IS NOT NULL AND next_payment_due BETWEEN ? AND ?",
			models.MerchantStatusActive, now, horizon).
		Find(&merchants).Error
	if err != nil {
		return err
	}

	for i := range merchants {
		mail.SendPaymentReminderEmail(&merchants[i])
	}
	return nil
}
