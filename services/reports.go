package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"parkirku/models"
)

// Reports 統計與每日重置
type Reports struct {
	registry *Registry
	ledger   *Ledger
	store    Store
}

func NewReports(registry *Registry, ledger *Ledger, store Store) *Reports {
	return &Reports{registry: registry, ledger: ledger, store: store}
}

// TypeStats is the per-vehicle-type slice of the occupancy numbers.
type TypeStats struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
}

// Stats is the system-wide occupancy snapshot.
type Stats struct {
	Total        int       `json:"total"`
	Empty        int       `json:"empty"`
	Occupied     int       `json:"occupied"`
	OccupancyPct float64   `json:"occupancy_pct"`
	Motor        TypeStats `json:"motor"`
	Car          TypeStats `json:"car"`
}

// Stats computes current occupancy across all floors. The percentage is
// rounded to one decimal and zero when there are no slots at all.
func (r *Reports) Stats() (Stats, error) {
	floors, err := r.registry.Floors()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	for i := range floors {
		floor := &floors[i]
		occupied := floor.OccupiedCount()
		stats.Total += len(floor.Slots)
		stats.Occupied += occupied
		switch floor.Type {
		case models.VehicleTypeMotor:
			stats.Motor.Total += len(floor.Slots)
			stats.Motor.Occupied += occupied
		case models.VehicleTypeCar:
			stats.Car.Total += len(floor.Slots)
			stats.Car.Occupied += occupied
		}
	}
	stats.Empty = stats.Total - stats.Occupied
	if stats.Total > 0 {
		stats.OccupancyPct = math.Round(float64(stats.Occupied)/float64(stats.Total)*1000) / 10
	}
	return stats, nil
}

// TodayRevenue sums today's paid transactions.
func (r *Reports) TodayRevenue() (float64, error) {
	return r.ledger.RevenueOn(time.Now())
}

// ResetDaily empties every slot, wipes the ENTIRE transaction ledger (not
// just today's rows) and stamps settings.lastResetDate. Irreversible; the
// confirm flag must be set explicitly by the caller.
func (r *Reports) ResetDaily(confirm bool) error {
	if !confirm {
		return fmt.Errorf("%w: daily reset requires explicit confirmation", ErrValidation)
	}

	if err := r.registry.ResetAll(); err != nil {
		return err
	}
	if err := r.ledger.Clear(); err != nil {
		return err
	}

	settings, err := r.store.Settings()
	if err != nil {
		return err
	}
	today := time.Now().Format("2006-01-02")
	settings.LastResetDate = &today
	if err := r.store.SaveSettings(settings); err != nil {
		return err
	}

	log.Printf("Daily reset completed, lastResetDate=%s", today)
	return nil
}

// UpdateRates replaces the rate table. Zero or negative rates are refused.
func (r *Reports) UpdateRates(rates models.Rates) (models.Settings, error) {
	if rates.Motor <= 0 || rates.Car <= 0 || rates.Minimum < 0 {
		return models.Settings{}, fmt.Errorf("%w: rates must be positive", ErrValidation)
	}

	settings, err := r.store.Settings()
	if err != nil {
		return models.Settings{}, err
	}
	settings.Rates = rates
	if err := r.store.SaveSettings(settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Settings exposes the current settings object.
func (r *Reports) Settings() (models.Settings, error) {
	return r.store.Settings()
}
