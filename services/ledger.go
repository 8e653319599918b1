package services

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"parkirku/models"
)

var (
	durationHoursPattern   = regexp.MustCompile(`(\d+)\s*jam`)
	durationMinutesPattern = regexp.MustCompile(`(\d+)\s*menit`)
)

// Ledger 只追加的交易帳本：一次停車結清恰好寫入一筆
type Ledger struct {
	mu    sync.Mutex
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// VehicleStats are the per-plate aggregates shown alongside the history.
type VehicleStats struct {
	Transactions    int     `json:"transactions"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgDurationMins int     `json:"avg_duration_mins"`
}

// DailyPoint is one calendar day of the trailing series.
type DailyPoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Record appends a completed visit. Id and creation time are assigned here,
// never taken from the caller; records are immutable afterwards.
func (l *Ledger) Record(transaction models.Transaction) (*models.Transaction, error) {
	if transaction.LicensePlate == "" || transaction.SlotID == "" {
		return nil, fmt.Errorf("%w: transaction requires license plate and slot id", ErrValidation)
	}
	if transaction.Status == "" {
		transaction.Status = models.TransactionStatusPaid
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	transactions, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}

	transaction.ID = uuid.NewString()
	transaction.CreatedAt = time.Now()
	transactions = append(transactions, transaction)

	if err := l.store.SaveTransactions(transactions); err != nil {
		return nil, err
	}

	log.Printf("Recorded transaction %s for %s (%.0f)", transaction.ID, transaction.LicensePlate, transaction.Amount)
	return &transaction, nil
}

// Query returns transactions filtered by creation date, both bounds
// inclusive. Nil bounds are open ends.
func (l *Ledger) Query(from, to *time.Time) ([]models.Transaction, error) {
	transactions, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return transactions, nil
	}

	filtered := []models.Transaction{}
	for _, transaction := range transactions {
		day := dateOf(transaction.CreatedAt)
		if from != nil && day.Before(dateOf(*from)) {
			continue
		}
		if to != nil && day.After(dateOf(*to)) {
			continue
		}
		filtered = append(filtered, transaction)
	}
	return filtered, nil
}

// ByLicensePlate returns the history for a plate, case-insensitive substring
// match, most recent first.
func (l *Ledger) ByLicensePlate(plate string) ([]models.Transaction, error) {
	transactions, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(plate))
	matched := []models.Transaction{}
	for _, transaction := range transactions {
		if strings.Contains(strings.ToLower(transaction.LicensePlate), needle) {
			matched = append(matched, transaction)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// StatsByLicensePlate aggregates a plate's history: visit count, revenue of
// paid entries and average duration in minutes.
func (l *Ledger) StatsByLicensePlate(plate string) (VehicleStats, error) {
	matched, err := l.ByLicensePlate(plate)
	if err != nil {
		return VehicleStats{}, err
	}

	stats := VehicleStats{Transactions: len(matched)}
	if len(matched) == 0 {
		return stats, nil
	}

	totalMinutes := 0
	for _, transaction := range matched {
		if transaction.Status == models.TransactionStatusPaid {
			stats.TotalRevenue += transaction.Amount
		}
		totalMinutes += parseDurationMinutes(transaction.Duration)
	}
	stats.AvgDurationMins = int(float64(totalMinutes)/float64(len(matched)) + 0.5)
	return stats, nil
}

// DailySeries returns one point per calendar day for the trailing window
// ending today, oldest first. Revenue sums paid transactions only; days with
// no activity still appear with zeroes.
func (l *Ledger) DailySeries(days int) ([]DailyPoint, error) {
	if days <= 0 {
		days = 7
	}
	transactions, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}

	today := dateOf(time.Now())
	series := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		point := DailyPoint{Date: day.Format("2006-01-02")}
		for _, transaction := range transactions {
			if !dateOf(transaction.CreatedAt).Equal(day) {
				continue
			}
			point.Count++
			if transaction.Status == models.TransactionStatusPaid {
				point.Revenue += transaction.Amount
			}
		}
		series = append(series, point)
	}
	return series, nil
}

// RevenueOn sums the paid transactions created on the given day.
func (l *Ledger) RevenueOn(day time.Time) (float64, error) {
	transactions, err := l.store.Transactions()
	if err != nil {
		return 0, err
	}
	target := dateOf(day)
	total := 0.0
	for _, transaction := range transactions {
		if transaction.Status == models.TransactionStatusPaid && dateOf(transaction.CreatedAt).Equal(target) {
			total += transaction.Amount
		}
	}
	return total, nil
}

// Clear wipes the whole ledger. Only the daily reset calls this.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.SaveTransactions([]models.Transaction{})
}

// parseDurationMinutes reads "2 jam 10 menit" style text back into minutes.
func parseDurationMinutes(duration string) int {
	minutes := 0
	if m := durationHoursPattern.FindStringSubmatch(duration); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes += hours * 60
	}
	if m := durationMinutesPattern.FindStringSubmatch(duration); m != nil {
		mins, _ := strconv.Atoi(m[1])
		minutes += mins
	}
	return minutes
}

// dateOf truncates a timestamp to its local calendar day.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
