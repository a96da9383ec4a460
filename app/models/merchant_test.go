package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMerchant(t *testing.T) {
	m, err := CreateMerchant("Rafaela Souza", "Studio Rafa", "rafa@example.com", "s3cret-pw")
	require.NoError(t, err)

	assert.NotEmpty(t, m.PublicID)
	assert.Equal(t, MerchantStatusPending, m.Status)
	assert.Equal(t, PaymentStatusPending, m.PaymentStatus)
	assert.Equal(t, PlanFree, m.PlanStatus)
	assert.Equal(t, DefaultAccessDurationDays, m.AccessDurationDays)
	assert.NotEqual(t, "s3cret-pw", m.Password)
	assert.True(t, m.CheckPassword("s3cret-pw"))
	assert.False(t, m.CheckPassword("wrong"))
}

func TestCreateMerchantRejectsInvalidInput(t *testing.T) {
	_, err := CreateMerchant("Jo", "Studio", "not-an-email", "s3cret-pw")
	assert.Error(t, err)

	_, err = CreateMerchant("Rafaela Souza", "Studio Rafa", "rafa@example.com", "short")
	assert.Error(t, err)
}

func TestMerchantHasLiveAccess(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		status   string
		endDate  *time.Time
		expected bool
	}{
		{"active with future end", MerchantStatusActive, &future, true},
		{"active with past end", MerchantStatusActive, &past, false},
		{"active with end exactly now", MerchantStatusActive, &now, false},
		{"active without end date", MerchantStatusActive, nil, true},
		{"pending", MerchantStatusPending, &future, false},
		{"payment pending", MerchantStatusPaymentPending, &future, false},
		{"inactive", MerchantStatusInactive, &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Merchant{Status: tt.status, AccessEndDate: tt.endDate}
			assert.Equal(t, tt.expected, m.HasLiveAccess(now))
		})
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := &Appointment{StartsAt: base, EndsAt: base.Add(time.Hour)}

	touching := &Appointment{StartsAt: base.Add(time.Hour), EndsAt: base.Add(2 * time.Hour)}
	assert.False(t, a.Overlaps(touching), "back-to-back slots should not collide")

	inside := &Appointment{StartsAt: base.Add(15 * time.Minute), EndsAt: base.Add(30 * time.Minute)}
	assert.True(t, a.Overlaps(inside))

	straddling := &Appointment{StartsAt: base.Add(-15 * time.Minute), EndsAt: base.Add(15 * time.Minute)}
	assert.True(t, a.Overlaps(straddling))

	before := &Appointment{StartsAt: base.Add(-time.Hour), EndsAt: base}
	assert.False(t, a.Overlaps(before))
}

func TestAppointmentValidateRejectsInvertedInterval(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := &Appointment{
		MerchantID: 1,
		ClientID:   1,
		EmployeeID: 1,
		ServiceID:  1,
		StartsAt:   base,
		EndsAt:     base,
		Status:     AppointmentStatusScheduled,
	}
	assert.ErrorIs(t, a.Validate(), ErrAppointmentEndsTooEarly)
}

func TestWorkingHourValidate(t *testing.T) {
	w := &WorkingHour{MerchantID: 1, Weekday: 1, OpensAt: "09:00", ClosesAt: "18:00"}
	assert.NoError(t, w.Validate())

	w.ClosesAt = "08:00"
	assert.ErrorIs(t, w.Validate(), ErrInvalidWorkingHours)

	w.ClosesAt = "09:00"
	assert.ErrorIs(t, w.Validate(), ErrInvalidWorkingHours)

	w.ClosesAt = "9am"
	assert.Error(t, w.Validate())
}
