package services

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"parkirku/models"
)

// Billing 計費引擎：以目前的費率表（非進場當下的快照）計算停車費
type Billing struct {
	store Store
}

func NewBilling(store Store) *Billing {
	return &Billing{store: store}
}

// Cost computes the fee for a stay that started at entry and ends now.
// Partial hours always round up and the configured minimum is a floor on the
// total. Rates are read at computation time so a rate change applies to
// vehicles already parked.
func (b *Billing) Cost(entry time.Time, vehicleType string) (float64, error) {
	settings, err := b.store.Settings()
	if err != nil {
		return 0, err
	}
	if vehicleType != models.VehicleTypeMotor && vehicleType != models.VehicleTypeCar {
		return 0, fmt.Errorf("%w: vehicle type must be 'motor' or 'car'", ErrValidation)
	}
	return costAt(entry, time.Now(), vehicleType, settings.Rates), nil
}

func costAt(entry, now time.Time, vehicleType string, rates models.Rates) float64 {
	elapsed := now.Sub(entry)
	if elapsed < 0 {
		// Clock skew: clamp to zero elapsed, never a negative fee.
		elapsed = 0
	}
	hours := math.Ceil(elapsed.Hours())

	rate := rates.Car
	if vehicleType == models.VehicleTypeMotor {
		rate = rates.Motor
	}

	cost := hours * rate
	if cost < rates.Minimum {
		cost = rates.Minimum
	}
	return cost
}

// FormatDuration renders the elapsed time since entry as "X jam Y menit"
// ("Y menit" under an hour, "0 jam" when there is no entry time).
func (b *Billing) FormatDuration(entry *time.Time) string {
	return durationAt(entry, time.Now())
}

func durationAt(entry *time.Time, now time.Time) string {
	if entry == nil {
		return "0 jam"
	}
	elapsed := now.Sub(*entry)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d jam %d menit", hours, minutes)
	}
	return fmt.Sprintf("%d menit", minutes)
}

// FormatCurrency renders an amount as Indonesian Rupiah, e.g. "Rp 15.000".
func FormatCurrency(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	grouped := ""
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped += "."
		}
		grouped += string(d)
	}
	if negative {
		grouped = "-" + grouped
	}
	return "Rp " + grouped
}

// QRISPayload builds the payment QR data string shown at checkout. Image
// rendering is a presentation concern.
func QRISPayload(amount float64) string {
	return fmt.Sprintf("QRIS|PARKIR|%d|%.0f|IDR", time.Now().UnixMilli(), amount)
}
