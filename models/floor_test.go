package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotID(t *testing.T) {
	assert.Equal(t, "F1-A-01", SlotID("F1", 0, 1))
	assert.Equal(t, "F3-E-10", SlotID("F3", 4, 10))
	assert.Equal(t, "F2-Z-99", SlotID("F2", 25, 99))
}

func TestNewFloorGrid(t *testing.T) {
	floor := NewFloor("F1", "Lantai 1", VehicleTypeMotor, 2, 3)
	assert.Len(t, floor.Slots, 6)
	assert.Equal(t, "F1-A-01", floor.Slots[0].ID)
	assert.Equal(t, "F1-B-03", floor.Slots[5].ID)
	assert.Equal(t, "A", floor.Slots[0].Row)
	assert.Equal(t, 3, floor.Slots[5].Col)
	assert.Equal(t, 0, floor.OccupiedCount())
}

func TestSlotConsistent(t *testing.T) {
	slot := Slot{ID: "F1-A-01", Status: SlotStatusEmpty}
	assert.True(t, slot.Consistent())

	slot.Status = SlotStatusOccupied
	assert.False(t, slot.Consistent()) // occupied 卻沒有車輛/進場時間
}
