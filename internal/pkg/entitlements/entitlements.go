package entitlements

import (
	"strings"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

type Plan string

const (
	PlanFree Plan = "free"
	PlanVIP  Plan = "vip"
)

// Limits are the per-plan caps applied to a salon's catalog and booking
// horizon. Zero means unlimited.
type Limits struct {
	MaxEmployees       int
	MaxServices        int
	BookingHorizonDays int
}

// LimitsFor returns the caps for a given plan tier.
func LimitsFor(plan Plan) Limits {
	switch plan {
	case PlanVIP:
		return Limits{MaxEmployees: 0, MaxServices: 0, BookingHorizonDays: 180}
	default:
		return Limits{MaxEmployees: 3, MaxServices: 10, BookingHorizonDays: 30}
	}
}

// PlanFor normalizes a merchant's stored plan string to a known tier.
func PlanFor(m *models.Merchant) Plan {
	if m == nil {
		return PlanFree
	}
	switch strings.ToLower(strings.TrimSpace(m.PlanStatus)) {
	case string(PlanVIP):
		return PlanVIP
	default:
		return PlanFree
	}
}

// CanAddEmployee reports whether the plan allows one more employee.
func CanAddEmployee(plan Plan, current int) bool {
	l := LimitsFor(plan)
	return l.MaxEmployees == 0 || current < l.MaxEmployees
}

// CanAddService reports whether the plan allows one more service.
func CanAddService(plan Plan, current int) bool {
	l := LimitsFor(plan)
	return l.MaxServices == 0 || current < l.MaxServices
}
