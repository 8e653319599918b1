package models

import "time"

// Transaction statuses.
const (
	TransactionStatusPaid    = "paid"
	TransactionStatusPending = "pending"
)

// PaymentMethodQRIS is the only payment channel the original system supports.
const PaymentMethodQRIS = "QRIS"

// Transaction 結清一次停車的不可變帳目紀錄。ID 與 CreatedAt 一律由 Ledger 指派。
type Transaction struct {
	ID            string    `json:"id"`
	SlotID        string    `json:"slot_id"`
	LicensePlate  string    `json:"license_plate"`
	VehicleType   string    `json:"vehicle_type"`
	EntryTime     time.Time `json:"entry_time"`
	ExitTime      time.Time `json:"exit_time"`
	Duration      string    `json:"duration"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	QRCode        string    `json:"qr_code"`
	CreatedAt     time.Time `json:"created_at"`
}
