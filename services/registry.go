package services

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"parkirku/models"
	"parkirku/utils"
)

// Registry 車位/樓層註冊表：持有樓層集合，負責車位生命週期
// (empty ↔ occupied)。所有寫入都在 mutex 內走「整份讀、改、整份寫」。
type Registry struct {
	mu    sync.Mutex
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// VehicleInput is the check-in payload. QRCode is optional; a token is
// generated when absent.
type VehicleInput struct {
	LicensePlate string
	Type         string
	QRCode       string
}

// AddFloor creates a floor with rows*cols empty slots. The floor id is
// "F" + (count+1); ids are monotonic and never reused.
func (r *Registry) AddFloor(name, vehicleType string, rows, cols int) (*models.Floor, error) {
	if vehicleType != models.VehicleTypeMotor && vehicleType != models.VehicleTypeCar {
		return nil, fmt.Errorf("%w: vehicle type must be 'motor' or 'car'", ErrValidation)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows and cols must be positive", ErrValidation)
	}
	if rows > 26 {
		return nil, fmt.Errorf("%w: rows cannot exceed 26", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	floors, err := r.store.Floors()
	if err != nil {
		return nil, err
	}

	floorID := "F" + strconv.Itoa(len(floors)+1)
	for i := range floors {
		if floors[i].ID == floorID {
			return nil, fmt.Errorf("%w: floor %s already exists", ErrConflict, floorID)
		}
	}
	if name == "" {
		name = "Lantai " + strconv.Itoa(len(floors)+1)
	}

	floor := models.NewFloor(floorID, name, vehicleType, rows, cols)
	floors = append(floors, floor)
	if err := r.store.SaveFloors(floors); err != nil {
		return nil, err
	}

	log.Printf("Created floor %s (%s) with %d slots", floorID, vehicleType, len(floor.Slots))
	return &floor, nil
}

// ExpandFloor appends extra rows of slots to an existing floor and returns how
// many slots were actually added. New rows start at ceil(existingSlots/10);
// the row math assumes the original 10-column layout, so widening an existing
// row is silently a no-op for the columns that already exist.
func (r *Registry) ExpandFloor(floorID string, rows, cols int) (int, error) {
	if rows <= 0 || cols <= 0 {
		return 0, fmt.Errorf("%w: rows and cols must be positive", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	floors, err := r.store.Floors()
	if err != nil {
		return 0, err
	}

	index := -1
	for i := range floors {
		if floors[i].ID == floorID {
			index = i
			break
		}
	}
	if index == -1 {
		return 0, fmt.Errorf("%w: floor %s", ErrNotFound, floorID)
	}

	floor := &floors[index]
	existingRows := (len(floor.Slots) + 9) / 10
	if existingRows+rows > 26 {
		return 0, fmt.Errorf("%w: floor %s cannot grow past row Z", ErrValidation, floorID)
	}

	existing := make(map[string]bool, len(floor.Slots))
	for i := range floor.Slots {
		existing[floor.Slots[i].ID] = true
	}

	added := 0
	for row := existingRows; row < existingRows+rows; row++ {
		for col := 1; col <= cols; col++ {
			slotID := models.SlotID(floorID, row, col)
			if existing[slotID] {
				continue
			}
			floor.Slots = append(floor.Slots, models.Slot{
				ID:     slotID,
				Row:    models.RowLetter(row),
				Col:    col,
				Status: models.SlotStatusEmpty,
			})
			existing[slotID] = true
			added++
		}
	}

	if err := r.store.SaveFloors(floors); err != nil {
		return 0, err
	}

	log.Printf("Expanded floor %s by %d slots", floorID, added)
	return added, nil
}

// Floors returns the whole floor collection.
func (r *Registry) Floors() ([]models.Floor, error) {
	return r.store.Floors()
}

// Floor returns one floor by id.
func (r *Registry) Floor(floorID string) (*models.Floor, error) {
	floors, err := r.store.Floors()
	if err != nil {
		return nil, err
	}
	for i := range floors {
		if floors[i].ID == floorID {
			return &floors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: floor %s", ErrNotFound, floorID)
}

// Slot finds a slot by id across all floors, together with its floor.
func (r *Registry) Slot(slotID string) (*models.Slot, *models.Floor, error) {
	floors, err := r.store.Floors()
	if err != nil {
		return nil, nil, err
	}
	for i := range floors {
		for j := range floors[i].Slots {
			if floors[i].Slots[j].ID == slotID {
				return &floors[i].Slots[j], &floors[i], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
}

// EmptySlots returns every empty slot, restricted to floors of the given
// vehicle type when one is supplied. An empty result is not an error.
func (r *Registry) EmptySlots(vehicleType string) ([]models.Slot, error) {
	floors, err := r.store.Floors()
	if err != nil {
		return nil, err
	}
	slots := []models.Slot{}
	for i := range floors {
		if vehicleType != "" && floors[i].Type != vehicleType {
			continue
		}
		for j := range floors[i].Slots {
			if floors[i].Slots[j].Status == models.SlotStatusEmpty {
				slots = append(slots, floors[i].Slots[j])
			}
		}
	}
	return slots, nil
}

// OccupiedSlots returns every occupied slot across all floors.
func (r *Registry) OccupiedSlots() ([]models.Slot, error) {
	floors, err := r.store.Floors()
	if err != nil {
		return nil, err
	}
	slots := []models.Slot{}
	for i := range floors {
		for j := range floors[i].Slots {
			if floors[i].Slots[j].Occupied() {
				slots = append(slots, floors[i].Slots[j])
			}
		}
	}
	return slots, nil
}

// AssignVehicle parks a vehicle in an empty slot, stamping the entry time.
// A plate already parked anywhere in the system is refused, so the
// at-most-one-slot-per-plate invariant is owned here, not by callers.
// Nothing is mutated on failure.
func (r *Registry) AssignVehicle(slotID string, input VehicleInput) (*models.Vehicle, error) {
	plate := utils.NormalizePlate(input.LicensePlate)
	if !utils.ValidPlate(plate) {
		return nil, fmt.Errorf("%w: invalid license plate %q, expected format like 'B 1234 XYZ'", ErrValidation, input.LicensePlate)
	}
	if input.Type != models.VehicleTypeMotor && input.Type != models.VehicleTypeCar {
		return nil, fmt.Errorf("%w: vehicle type must be 'motor' or 'car'", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	floors, err := r.store.Floors()
	if err != nil {
		return nil, err
	}

	var target *models.Slot
	for i := range floors {
		for j := range floors[i].Slots {
			slot := &floors[i].Slots[j]
			if slot.Occupied() && slot.Vehicle != nil && slot.Vehicle.LicensePlate == plate {
				return nil, fmt.Errorf("%w: vehicle %s is already parked in slot %s", ErrConflict, plate, slot.ID)
			}
			if slot.ID == slotID {
				target = slot
			}
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}
	if target.Status != models.SlotStatusEmpty {
		return nil, fmt.Errorf("%w: slot %s is not empty", ErrConflict, slotID)
	}

	qrCode := input.QRCode
	if qrCode == "" {
		qrCode = utils.GenerateQRToken()
	}

	now := time.Now()
	vehicle := models.Vehicle{
		LicensePlate: plate,
		Type:         input.Type,
		QRCode:       qrCode,
		EntryTime:    now,
		SlotID:       slotID,
	}
	target.Status = models.SlotStatusOccupied
	target.Vehicle = &vehicle
	target.EntryTime = &now

	if err := r.store.SaveFloors(floors); err != nil {
		return nil, err
	}

	log.Printf("Vehicle %s checked in to slot %s", plate, slotID)
	return &vehicle, nil
}

// Release clears an occupied slot and returns a snapshot of the vehicle that
// was parked there. Verify-and-clear happens in one critical section: of two
// checkouts racing for the same slot, exactly one gets the snapshot and the
// other a conflict. Callers bill and record from the snapshot, never by
// re-reading the slot.
func (r *Registry) Release(slotID string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	floors, err := r.store.Floors()
	if err != nil {
		return nil, err
	}

	for i := range floors {
		for j := range floors[i].Slots {
			slot := &floors[i].Slots[j]
			if slot.ID != slotID {
				continue
			}
			if !slot.Occupied() {
				return nil, fmt.Errorf("%w: slot %s is not occupied", ErrConflict, slotID)
			}
			vehicle := *slot.Vehicle
			slot.Status = models.SlotStatusEmpty
			slot.Vehicle = nil
			slot.EntryTime = nil
			if err := r.store.SaveFloors(floors); err != nil {
				return nil, err
			}
			log.Printf("Slot %s released, vehicle %s checked out", slotID, vehicle.LicensePlate)
			return &vehicle, nil
		}
	}
	return nil, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
}

// ResetAll empties every slot on every floor. Floor definitions are kept.
func (r *Registry) ResetAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAllLocked()
}

func (r *Registry) resetAllLocked() error {
	floors, err := r.store.Floors()
	if err != nil {
		return err
	}
	for i := range floors {
		for j := range floors[i].Slots {
			floors[i].Slots[j].Status = models.SlotStatusEmpty
			floors[i].Slots[j].Vehicle = nil
			floors[i].Slots[j].EntryTime = nil
		}
	}
	return r.store.SaveFloors(floors)
}
