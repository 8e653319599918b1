package models

import (
	"fmt"
	"time"
)

// Vehicle types. A floor accepts exactly one type.
const (
	VehicleTypeMotor = "motor"
	VehicleTypeCar   = "car"
)

// Slot statuses.
const (
	SlotStatusEmpty    = "empty"
	SlotStatusOccupied = "occupied"
)

// Floor 樓層：一組限定單一車種的車位
type Floor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Slots []Slot `json:"slots"`
}

// Slot 個別車位。ID 是對外的穩定識別碼（"F1-A-01"），Row/Col 是內部結構欄位。
type Slot struct {
	ID        string     `json:"id"`
	Row       string     `json:"row"`
	Col       int        `json:"col"`
	Status    string     `json:"status"`
	Vehicle   *Vehicle   `json:"vehicle"`
	EntryTime *time.Time `json:"entry_time"`
}

// SlotID derives the stable external id from floor, row index (0 = "A") and
// 1-based column: "<floorId>-<rowLetter>-<2-digit col>".
func SlotID(floorID string, rowIndex, col int) string {
	return fmt.Sprintf("%s-%c-%02d", floorID, rune('A'+rowIndex), col)
}

// RowLetter returns the letter for a 0-based row index.
func RowLetter(rowIndex int) string {
	return string(rune('A' + rowIndex))
}

// NewFloor builds a floor with rows*cols empty slots, rows lettered from "A".
func NewFloor(id, name, vehicleType string, rows, cols int) Floor {
	floor := Floor{
		ID:    id,
		Name:  name,
		Type:  vehicleType,
		Slots: make([]Slot, 0, rows*cols),
	}
	for row := 0; row < rows; row++ {
		for col := 1; col <= cols; col++ {
			floor.Slots = append(floor.Slots, Slot{
				ID:     SlotID(id, row, col),
				Row:    RowLetter(row),
				Col:    col,
				Status: SlotStatusEmpty,
			})
		}
	}
	return floor
}

// Occupied reports whether the slot currently holds a vehicle.
func (s *Slot) Occupied() bool {
	return s.Status == SlotStatusOccupied
}

// Consistent checks the slot invariant: occupied ⇔ vehicle and entry time are set.
func (s *Slot) Consistent() bool {
	if s.Status == SlotStatusOccupied {
		return s.Vehicle != nil && s.EntryTime != nil
	}
	return s.Vehicle == nil && s.EntryTime == nil
}

// OccupiedCount counts the occupied slots on the floor.
func (f *Floor) OccupiedCount() int {
	count := 0
	for i := range f.Slots {
		if f.Slots[i].Occupied() {
			count++
		}
	}
	return count
}

// FloorResponse 定義樓層回應結構（含即時佔用統計）
type FloorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Total    int    `json:"total"`
	Occupied int    `json:"occupied"`
	Slots    []Slot `json:"slots"`
}

func (f *Floor) ToResponse() FloorResponse {
	return FloorResponse{
		ID:       f.ID,
		Name:     f.Name,
		Type:     f.Type,
		Total:    len(f.Slots),
		Occupied: f.OccupiedCount(),
		Slots:    f.Slots,
	}
}
