package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkirku/services"
)

// CheckInRequest 車輛進場請求；QRCode 可留空由系統產生
type CheckInRequest struct {
	LicensePlate string `json:"license_plate" binding:"required,max=12"`
	Type         string `json:"type" binding:"required,oneof=motor car"`
	SlotID       string `json:"slot_id" binding:"required"`
	QRCode       string `json:"qr_code" binding:"omitempty,max=30"`
}

// CheckIn 車輛進場：驗證車牌、檢查全場唯一後指派車位
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	vehicle, err := h.Registry.AssignVehicle(req.SlotID, services.VehicleInput{
		LicensePlate: req.LicensePlate,
		Type:         req.Type,
		QRCode:       req.QRCode,
	})
	if err != nil {
		ServiceError(c, "Failed to check in vehicle", err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Vehicle checked in", vehicle)
}
