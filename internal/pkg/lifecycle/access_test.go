package lifecycle

import (
	"testing"
	"time"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

func TestIsAccessLive(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name   string
		status string
		end    *time.Time
		want   bool
	}{
		{name: "active without end date", status: models.MerchantStatusActive, end: nil, want: true},
		{name: "active with future end", status: models.MerchantStatusActive, end: &future, want: true},
		{name: "active with past end", status: models.MerchantStatusActive, end: &past, want: false},
		{name: "active with end exactly now", status: models.MerchantStatusActive, end: &now, want: false},
		{name: "pending with future end", status: models.MerchantStatusPending, end: &future, want: false},
		{name: "payment_pending", status: models.MerchantStatusPaymentPending, end: &future, want: false},
		{name: "inactive", status: models.MerchantStatusInactive, end: nil, want: false},
	}

	for _, tt := range tests {
		m := &models.Merchant{Status: tt.status, AccessEndDate: tt.end}
		if got := IsAccessLive(m, now); got != tt.want {
			t.Fatalf("%s: IsAccessLive = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsAccessLive_NilMerchant(t *testing.T) {
	if IsAccessLive(nil, time.Now()) {
		t.Fatalf("expected nil merchant to have no access")
	}
}
