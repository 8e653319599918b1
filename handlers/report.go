package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkirku/services"
)

// ResetRequest 每日重置請求；confirm 未帶或為 false 一律拒絕
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// GetStats 即時佔用統計（全場與各車種）
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Reports.Stats()
	if err != nil {
		ServiceError(c, "Failed to compute stats", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Stats computed", stats)
}

// DailySeries 近 N 日（預設 7）每日交易數與營收序列，舊到新
func (h *Handler) DailySeries(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 90 {
			ErrorResponse(c, http.StatusBadRequest, "Invalid 'days' value", "days must be between 1 and 90")
			return
		}
		days = parsed
	}

	series, err := h.Ledger.DailySeries(days)
	if err != nil {
		ServiceError(c, "Failed to compute daily series", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Daily series computed", series)
}

// TodayRevenue 今日已付款營收
func (h *Handler) TodayRevenue(c *gin.Context) {
	revenue, err := h.Reports.TodayRevenue()
	if err != nil {
		ServiceError(c, "Failed to compute revenue", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Revenue computed", gin.H{
		"revenue":           revenue,
		"revenue_formatted": services.FormatCurrency(revenue),
	})
}

// ResetDaily 清空所有車位與整本交易帳、蓋上重置日期；不可復原
func (h *Handler) ResetDaily(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.Reports.ResetDaily(req.Confirm); err != nil {
		ServiceError(c, "Failed to reset daily data", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Daily data reset", nil)
}

// GetWarnings 目前的巡檢警示（佔用率、超時車輛）
func (h *Handler) GetWarnings(c *gin.Context) {
	warnings, err := h.Monitor.Warnings()
	if err != nil {
		ServiceError(c, "Failed to collect warnings", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Warnings collected", warnings)
}
