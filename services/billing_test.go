package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkirku/models"
)

var testRates = models.Rates{Motor: 2000, Car: 5000, Minimum: 5000}

func TestCostMotor45MinutesHitsMinimum(t *testing.T) {
	entry := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	now := entry.Add(45 * time.Minute)

	// ceil(0.75) = 1 jam × 2000 = 2000, dibulatkan ke minimum 5000
	got := costAt(entry, now, models.VehicleTypeMotor, testRates)
	assert.Equal(t, 5000.0, got)
}

func TestCostCarTwoHoursTenMinutes(t *testing.T) {
	entry := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	now := entry.Add(2*time.Hour + 10*time.Minute)

	// ceil(2.17) = 3 jam × 5000 = 15000
	got := costAt(entry, now, models.VehicleTypeCar, testRates)
	assert.Equal(t, 15000.0, got)
}

func TestCostExactHourDoesNotRoundUp(t *testing.T) {
	entry := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	now := entry.Add(2 * time.Hour)

	got := costAt(entry, now, models.VehicleTypeCar, testRates)
	assert.Equal(t, 10000.0, got)
}

func TestCostNegativeElapsedClampsToMinimum(t *testing.T) {
	now := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)
	entry := now.Add(30 * time.Minute) // clock skew: entry in the future

	got := costAt(entry, now, models.VehicleTypeCar, testRates)
	assert.Equal(t, testRates.Minimum, got)
}

func TestCostMonotonicInElapsedTime(t *testing.T) {
	entry := time.Date(2026, 8, 28, 8, 0, 0, 0, time.Local)

	previous := 0.0
	for minutes := 0; minutes <= 48*60; minutes += 17 {
		now := entry.Add(time.Duration(minutes) * time.Minute)
		got := costAt(entry, now, models.VehicleTypeCar, testRates)
		assert.GreaterOrEqual(t, got, previous, "cost decreased at %d minutes", minutes)
		assert.GreaterOrEqual(t, got, testRates.Minimum)
		previous = got
	}
}

func TestCostReadsLiveRateTable(t *testing.T) {
	store := newMemStore()
	billing := NewBilling(store)
	entry := time.Now().Add(-90 * time.Minute) // 2 jam setelah pembulatan

	before, err := billing.Cost(entry, models.VehicleTypeCar)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, before)

	// 費率改了，停放中車輛結帳時直接按新價
	settings, err := store.Settings()
	require.NoError(t, err)
	settings.Rates.Car = 8000
	require.NoError(t, store.SaveSettings(settings))

	after, err := billing.Cost(entry, models.VehicleTypeCar)
	require.NoError(t, err)
	assert.Equal(t, 16000.0, after)
}

func TestCostUnknownVehicleType(t *testing.T) {
	billing := NewBilling(newMemStore())

	_, err := billing.Cost(time.Now(), "truck")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDurationText(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)

	assert.Equal(t, "0 jam", durationAt(nil, now))

	entry := now.Add(-45 * time.Minute)
	assert.Equal(t, "45 menit", durationAt(&entry, now))

	entry = now.Add(-(2*time.Hour + 10*time.Minute))
	assert.Equal(t, "2 jam 10 menit", durationAt(&entry, now))

	entry = now.Add(30 * time.Minute) // clock skew
	assert.Equal(t, "0 menit", durationAt(&entry, now))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatCurrency(0))
	assert.Equal(t, "Rp 5.000", FormatCurrency(5000))
	assert.Equal(t, "Rp 15.000", FormatCurrency(15000))
	assert.Equal(t, "Rp 1.234.567", FormatCurrency(1234567))
}

func TestQRISPayloadShape(t *testing.T) {
	payload := QRISPayload(15000)
	assert.Regexp(t, `^QRIS\|PARKIR\|\d+\|15000\|IDR$`, payload)
}
