package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkirku/models"
)

func TestAddFloorGeneratesSlotGrid(t *testing.T) {
	registry := NewRegistry(newMemStore())

	floor, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 5, 10)
	require.NoError(t, err)

	assert.Equal(t, "F1", floor.ID)
	require.Len(t, floor.Slots, 50)
	assert.Equal(t, "F1-A-01", floor.Slots[0].ID)
	assert.Equal(t, "F1-E-10", floor.Slots[49].ID)
	for i := range floor.Slots {
		assert.Equal(t, models.SlotStatusEmpty, floor.Slots[i].Status)
		assert.True(t, floor.Slots[i].Consistent())
	}
}

func TestAddFloorIDsAreMonotonic(t *testing.T) {
	registry := NewRegistry(newMemStore())

	first, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 2)
	require.NoError(t, err)
	second, err := registry.AddFloor("Lantai 2", models.VehicleTypeCar, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, "F1", first.ID)
	assert.Equal(t, "F2", second.ID)
}

func TestAddFloorDefaultsName(t *testing.T) {
	registry := NewRegistry(newMemStore())

	first, err := registry.AddFloor("", models.VehicleTypeMotor, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Lantai 1", first.Name)

	second, err := registry.AddFloor("", models.VehicleTypeCar, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Lantai 2", second.Name)
}

func TestAddFloorValidation(t *testing.T) {
	registry := NewRegistry(newMemStore())

	_, err := registry.AddFloor("Lantai 1", "truck", 5, 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = registry.AddFloor("Lantai 1", models.VehicleTypeCar, 0, 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = registry.AddFloor("Lantai 1", models.VehicleTypeCar, 5, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExpandFloorAppendsRows(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 5, 10)
	require.NoError(t, err)

	added, err := registry.ExpandFloor("F1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, added)

	floor, err := registry.Floor("F1")
	require.NoError(t, err)
	require.Len(t, floor.Slots, 60)
	assert.Equal(t, "F1-F-01", floor.Slots[50].ID)
	assert.Equal(t, "F1-F-10", floor.Slots[59].ID)
}

func TestExpandFloorUnknownFloor(t *testing.T) {
	registry := NewRegistry(newMemStore())

	_, err := registry.ExpandFloor("F9", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignVehicleLifecycle(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 2)
	require.NoError(t, err)

	vehicle, err := registry.AssignVehicle("F1-A-01", VehicleInput{
		LicensePlate: "B 1234 XYZ",
		Type:         models.VehicleTypeMotor,
	})
	require.NoError(t, err)
	assert.Equal(t, "B 1234 XYZ", vehicle.LicensePlate)
	assert.NotEmpty(t, vehicle.QRCode)

	slot, _, err := registry.Slot("F1-A-01")
	require.NoError(t, err)
	assert.True(t, slot.Occupied())
	assert.True(t, slot.Consistent())
	require.NotNil(t, slot.EntryTime)
	assert.WithinDuration(t, time.Now(), *slot.EntryTime, 5*time.Second)

	released, err := registry.Release("F1-A-01")
	require.NoError(t, err)
	assert.Equal(t, "B 1234 XYZ", released.LicensePlate)
	assert.Equal(t, "F1-A-01", released.SlotID)
	assert.True(t, released.EntryTime.Equal(*slot.EntryTime))

	slot, _, err = registry.Slot("F1-A-01")
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusEmpty, slot.Status)
	assert.Nil(t, slot.Vehicle)
	assert.Nil(t, slot.EntryTime)
	assert.True(t, slot.Consistent())
}

func TestAssignVehicleOccupiedSlotIsNoOp(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 2)
	require.NoError(t, err)

	_, err = registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "B 1 A", Type: models.VehicleTypeMotor})
	require.NoError(t, err)

	_, err = registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "D 2 B", Type: models.VehicleTypeMotor})
	assert.ErrorIs(t, err, ErrConflict)

	// 原車輛不受影響
	slot, _, err := registry.Slot("F1-A-01")
	require.NoError(t, err)
	require.NotNil(t, slot.Vehicle)
	assert.Equal(t, "B 1 A", slot.Vehicle.LicensePlate)
}

func TestAssignVehicleUnknownSlot(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 1)
	require.NoError(t, err)

	_, err = registry.AssignVehicle("F1-Z-99", VehicleInput{LicensePlate: "B 1 A", Type: models.VehicleTypeMotor})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignVehicleRejectsDuplicatePlateSystemWide(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 5)
	require.NoError(t, err)
	_, err = registry.AddFloor("Lantai 2", models.VehicleTypeCar, 1, 5)
	require.NoError(t, err)

	_, err = registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "B 1234 XYZ", Type: models.VehicleTypeMotor})
	require.NoError(t, err)

	// 跨樓層同車牌一律拒絕
	_, err = registry.AssignVehicle("F2-A-01", VehicleInput{LicensePlate: "B 1234 XYZ", Type: models.VehicleTypeCar})
	assert.ErrorIs(t, err, ErrConflict)

	slot, _, err := registry.Slot("F2-A-01")
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusEmpty, slot.Status)
}

func TestAssignVehicleNormalizesPlate(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 1)
	require.NoError(t, err)

	vehicle, err := registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "b1234xyz", Type: models.VehicleTypeMotor})
	require.NoError(t, err)
	assert.Equal(t, "B 1234 XYZ", vehicle.LicensePlate)
}

func TestAssignVehicleRejectsMalformedPlate(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 1)
	require.NoError(t, err)

	_, err = registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "12345", Type: models.VehicleTypeMotor})
	assert.ErrorIs(t, err, ErrValidation)

	slot, _, err := registry.Slot("F1-A-01")
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusEmpty, slot.Status)
}

func TestReleaseEmptySlotIsNoOp(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 1)
	require.NoError(t, err)

	_, err = registry.Release("F1-A-01")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = registry.Release("F1-B-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseConcurrentCheckoutSettlesOnce(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	billing := NewBilling(store)
	ledger := NewLedger(store)

	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 1)
	require.NoError(t, err)
	_, err = registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "B 1234 XYZ", Type: models.VehicleTypeMotor})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var settled int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vehicle, err := registry.Release("F1-A-01")
			if err != nil {
				// 搶輸的一律拿到 conflict，不能入帳
				assert.ErrorIs(t, err, ErrConflict)
				return
			}
			amount, err := billing.Cost(vehicle.EntryTime, vehicle.Type)
			assert.NoError(t, err)
			_, err = ledger.Record(models.Transaction{
				SlotID:        vehicle.SlotID,
				LicensePlate:  vehicle.LicensePlate,
				VehicleType:   vehicle.Type,
				EntryTime:     vehicle.EntryTime,
				ExitTime:      time.Now(),
				Duration:      billing.FormatDuration(&vehicle.EntryTime),
				Amount:        amount,
				Status:        models.TransactionStatusPaid,
				PaymentMethod: models.PaymentMethodQRIS,
			})
			assert.NoError(t, err)
			atomic.AddInt32(&settled, 1)
		}()
	}
	wg.Wait()

	// 一段停車只入帳一次
	assert.EqualValues(t, 1, settled)
	transactions, err := ledger.Query(nil, nil)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)

	slot, _, err := registry.Slot("F1-A-01")
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusEmpty, slot.Status)
	assert.True(t, slot.Consistent())
}

func TestEmptySlotsFiltersByFloorType(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 3)
	require.NoError(t, err)
	_, err = registry.AddFloor("Lantai 2", models.VehicleTypeCar, 1, 2)
	require.NoError(t, err)

	_, err = registry.AssignVehicle("F1-A-01", VehicleInput{LicensePlate: "B 1 A", Type: models.VehicleTypeMotor})
	require.NoError(t, err)

	all, err := registry.EmptySlots("")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	motor, err := registry.EmptySlots(models.VehicleTypeMotor)
	require.NoError(t, err)
	assert.Len(t, motor, 2)

	car, err := registry.EmptySlots(models.VehicleTypeCar)
	require.NoError(t, err)
	assert.Len(t, car, 2)
}

func TestEmptySlotsNoMatchesIsEmptyNotError(t *testing.T) {
	registry := NewRegistry(newMemStore())

	slots, err := registry.EmptySlots(models.VehicleTypeCar)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResetAllEmptiesEverySlot(t *testing.T) {
	registry := NewRegistry(newMemStore())
	_, err := registry.AddFloor("Lantai 1", models.VehicleTypeMotor, 1, 3)
	require.NoError(t, err)
	_, err = registry.AssignVehicle("F1-A-02", VehicleInput{LicensePlate: "B 12 CD", Type: models.VehicleTypeMotor})
	require.NoError(t, err)

	require.NoError(t, registry.ResetAll())

	floors, err := registry.Floors()
	require.NoError(t, err)
	require.Len(t, floors, 1) // 樓層定義保留
	for _, slot := range floors[0].Slots {
		assert.Equal(t, models.SlotStatusEmpty, slot.Status)
		assert.True(t, slot.Consistent())
	}
}
