package pix

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const (
	// DefaultPollInterval is how often an in-flight charge is re-checked.
	DefaultPollInterval = 5 * time.Second
	// DefaultPollCeiling bounds the whole polling flow; past it the charge is
	// abandoned locally and the merchant can retry with a fresh charge.
	DefaultPollCeiling = 30 * time.Minute
)

// StatusFunc fetches the current status of a charge.
type StatusFunc func(ctx context.Context, txID string) (string, error)

// Poller drives the cooperative polling loop for a single charge. A status
// fetch error counts as "still pending" for that tick; only a terminal status
// or the ceiling stops the loop.
type Poller struct {
	Interval time.Duration
	Ceiling  time.Duration
	Fetch    StatusFunc
}

// NewPoller builds a poller with the default cadence around a status fetcher.
func NewPoller(fetch StatusFunc) *Poller {
	return &Poller{
		Interval: DefaultPollInterval,
		Ceiling:  DefaultPollCeiling,
		Fetch:    fetch,
	}
}

// Wait polls until the charge reaches a terminal status, the ceiling elapses
// or the context is cancelled. On ceiling or cancellation it returns
// StatusPending with a nil error: neither is a failed payment, and the
// gateway's webhook may still complete the flow out of band.
func (p *Poller) Wait(ctx context.Context, txID string) (string, error) {
	deadline := time.NewTimer(p.Ceiling)
	defer deadline.Stop()
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return StatusPending, nil
		case <-deadline.C:
			log.Infof("[PIX] polling ceiling reached for charge %s, leaving it pending", txID)
			return StatusPending, nil
		case <-ticker.C:
			status, err := p.Fetch(ctx, txID)
			if err != nil {
				log.Warnf("[PIX] status poll for charge %s failed, treating as pending: %v", txID, err)
				continue
			}
			if IsTerminalStatus(status) {
				return status, nil
			}
		}
	}
}
