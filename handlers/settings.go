package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkirku/models"
)

// UpdateSettingsRequest 費率更新請求
type UpdateSettingsRequest struct {
	Motor   float64 `json:"motor" binding:"required,gt=0"`
	Car     float64 `json:"car" binding:"required,gt=0"`
	Minimum float64 `json:"minimum" binding:"gte=0"`
}

// GetSettings 查詢目前設定
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.Reports.Settings()
	if err != nil {
		ServiceError(c, "Failed to fetch settings", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Settings fetched", settings)
}

// UpdateSettings 更新費率表；停放中車輛離場時即按新費率計費
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	settings, err := h.Reports.UpdateRates(models.Rates{
		Motor:   req.Motor,
		Car:     req.Car,
		Minimum: req.Minimum,
	})
	if err != nil {
		ServiceError(c, "Failed to update settings", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Settings updated", settings)
}
