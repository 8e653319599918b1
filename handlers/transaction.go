package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parkirku/models"
	"parkirku/services"
)

// CheckoutRequest 離場結帳請求
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=QRIS cash"`
}

// PreviewBill 離場前試算：金額、時長與 QRIS 付款字串，不改動任何狀態
func (h *Handler) PreviewBill(c *gin.Context) {
	slot, _, err := h.Registry.Slot(c.Param("id"))
	if err != nil {
		ServiceError(c, "Failed to fetch slot", err)
		return
	}
	if !slot.Occupied() {
		ErrorResponse(c, http.StatusConflict, "Slot is not occupied", "no vehicle to bill in slot "+slot.ID)
		return
	}

	amount, err := h.Billing.Cost(*slot.EntryTime, slot.Vehicle.Type)
	if err != nil {
		ServiceError(c, "Failed to compute cost", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Bill computed", gin.H{
		"slot_id":          slot.ID,
		"license_plate":    slot.Vehicle.LicensePlate,
		"vehicle_type":     slot.Vehicle.Type,
		"entry_time":       slot.EntryTime,
		"duration":         h.Billing.FormatDuration(slot.EntryTime),
		"amount":           amount,
		"amount_formatted": services.FormatCurrency(amount),
		"qris_payload":     services.QRISPayload(amount),
	})
}

// Checkout 離場：釋放車位取回快照 → 計費 → 寫入交易
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	// Body is optional; an absent body means the default payment method.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentMethodQRIS
	}

	// 先原子性地釋放車位並取回車輛快照；同一車位的併發結帳只有一個會成功，
	// 後續計費與入帳都讀快照，不再回頭讀車位
	vehicle, err := h.Registry.Release(c.Param("id"))
	if err != nil {
		ServiceError(c, "Failed to check out slot", err)
		return
	}

	amount, err := h.Billing.Cost(vehicle.EntryTime, vehicle.Type)
	if err != nil {
		ServiceError(c, "Failed to compute cost", err)
		return
	}

	now := time.Now()
	transaction, err := h.Ledger.Record(models.Transaction{
		SlotID:        vehicle.SlotID,
		LicensePlate:  vehicle.LicensePlate,
		VehicleType:   vehicle.Type,
		EntryTime:     vehicle.EntryTime,
		ExitTime:      now,
		Duration:      h.Billing.FormatDuration(&vehicle.EntryTime),
		Amount:        amount,
		Status:        models.TransactionStatusPaid,
		PaymentMethod: req.PaymentMethod,
		QRCode:        vehicle.QRCode,
	})
	if err != nil {
		ServiceError(c, "Failed to record transaction", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Checkout completed", gin.H{
		"transaction":      transaction,
		"amount_formatted": services.FormatCurrency(transaction.Amount),
	})
}

// ListTransactions 依建立日期查詢交易，from/to 皆含當日（格式 2006-01-02）
func (h *Handler) ListTransactions(c *gin.Context) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid 'from' date", err.Error())
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid 'to' date", err.Error())
			return
		}
		to = &parsed
	}

	transactions, err := h.Ledger.Query(from, to)
	if err != nil {
		ServiceError(c, "Failed to fetch transactions", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Transactions fetched", transactions)
}

// VehicleHistory 依車牌查詢歷史與彙總（次數、付款總額、平均時長）
func (h *Handler) VehicleHistory(c *gin.Context) {
	plate := c.Param("plate")

	transactions, err := h.Ledger.ByLicensePlate(plate)
	if err != nil {
		ServiceError(c, "Failed to fetch vehicle history", err)
		return
	}
	stats, err := h.Ledger.StatsByLicensePlate(plate)
	if err != nil {
		ServiceError(c, "Failed to compute vehicle stats", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Vehicle history fetched", gin.H{
		"stats":        stats,
		"transactions": transactions,
	})
}
