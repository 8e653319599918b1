package models

import "time"

// Vehicle 停放中的車輛：只存在於 occupied 車位內，離場時轉成 Transaction 後丟棄
type Vehicle struct {
	LicensePlate string    `json:"license_plate"`
	Type         string    `json:"type"`
	QRCode       string    `json:"qr_code"`
	EntryTime    time.Time `json:"entry_time"`
	SlotID       string    `json:"slot_id"`
}
