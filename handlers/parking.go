package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkirku/models"
)

// CreateFloorRequest 新增樓層請求
type CreateFloorRequest struct {
	// Name 可留空，留空時由註冊表補上「Lantai N」
	Name string `json:"name" binding:"omitempty,max=50"`
	Type string `json:"type" binding:"required,oneof=motor car"`
	Rows int    `json:"rows" binding:"required,gt=0,lte=26"`
	Cols int    `json:"cols" binding:"required,gt=0,lte=99"`
}

// ExpandFloorRequest 擴充車位請求
type ExpandFloorRequest struct {
	Rows int `json:"rows" binding:"required,gt=0"`
	Cols int `json:"cols" binding:"required,gt=0,lte=99"`
}

// CreateFloor 新增樓層
func (h *Handler) CreateFloor(c *gin.Context) {
	var req CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	floor, err := h.Registry.AddFloor(req.Name, req.Type, req.Rows, req.Cols)
	if err != nil {
		ServiceError(c, "Failed to create floor", err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Floor created", floor.ToResponse())
}

// ListFloors 查詢所有樓層與即時佔用數
func (h *Handler) ListFloors(c *gin.Context) {
	floors, err := h.Registry.Floors()
	if err != nil {
		ServiceError(c, "Failed to fetch floors", err)
		return
	}

	responses := make([]models.FloorResponse, len(floors))
	for i := range floors {
		responses[i] = floors[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "Floors fetched", responses)
}

// ExpandFloor 為既有樓層加開車位，回傳實際新增數
func (h *Handler) ExpandFloor(c *gin.Context) {
	var req ExpandFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	added, err := h.Registry.ExpandFloor(c.Param("id"), req.Rows, req.Cols)
	if err != nil {
		ServiceError(c, "Failed to expand floor", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Floor expanded", gin.H{"added": added})
}

// EmptySlots 查詢空位，可用 ?type=motor|car 篩選樓層車種
func (h *Handler) EmptySlots(c *gin.Context) {
	vehicleType := c.Query("type")
	if vehicleType != "" && vehicleType != models.VehicleTypeMotor && vehicleType != models.VehicleTypeCar {
		ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle type", "type must be 'motor' or 'car'")
		return
	}

	slots, err := h.Registry.EmptySlots(vehicleType)
	if err != nil {
		ServiceError(c, "Failed to fetch empty slots", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Empty slots fetched", slots)
}

// OccupiedSlots 查詢使用中車位
func (h *Handler) OccupiedSlots(c *gin.Context) {
	slots, err := h.Registry.OccupiedSlots()
	if err != nil {
		ServiceError(c, "Failed to fetch occupied slots", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Occupied slots fetched", slots)
}

// GetSlot 查詢單一車位（含即時停車時長）
func (h *Handler) GetSlot(c *gin.Context) {
	slot, floor, err := h.Registry.Slot(c.Param("id"))
	if err != nil {
		ServiceError(c, "Failed to fetch slot", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Slot fetched", gin.H{
		"slot":       slot,
		"floor_id":   floor.ID,
		"floor_name": floor.Name,
		"duration":   h.Billing.FormatDuration(slot.EntryTime),
	})
}
