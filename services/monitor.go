package services

import (
	"fmt"
	"time"
)

// Warning thresholds, matching the operator alerts of the original system.
const (
	occupancyWarnPct = 80.0
	overstayLimit    = 24 * time.Hour
)

// Monitor 週期性的唯讀巡檢：只讀資料、只產生警示，絕不改動狀態，
// 因此可獨立排程執行，不需與其他操作協調。
type Monitor struct {
	registry *Registry
	reports  *Reports
}

func NewMonitor(registry *Registry, reports *Reports) *Monitor {
	return &Monitor{registry: registry, reports: reports}
}

// Warnings collects the current alerts: near-full occupancy and vehicles
// parked for 24 hours or more.
func (m *Monitor) Warnings() ([]string, error) {
	warnings := []string{}

	stats, err := m.reports.Stats()
	if err != nil {
		return nil, err
	}
	if stats.OccupancyPct >= occupancyWarnPct {
		warnings = append(warnings, fmt.Sprintf("Peringatan: slot parkir hampir penuh (%.1f%%)", stats.OccupancyPct))
	}

	occupied, err := m.registry.OccupiedSlots()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, slot := range occupied {
		if slot.EntryTime == nil || slot.Vehicle == nil {
			continue
		}
		if now.Sub(*slot.EntryTime) >= overstayLimit {
			warnings = append(warnings, fmt.Sprintf("Kendaraan %s di slot %s sudah lebih dari 24 jam", slot.Vehicle.LicensePlate, slot.ID))
		}
	}
	return warnings, nil
}
