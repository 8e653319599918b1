package services

import "parkirku/models"

// Store 引擎對持久層的最小介面；四個具名紀錄都是整份讀、整份寫。
// 由 storage.Store 實作，測試用記憶體替身。
type Store interface {
	Floors() ([]models.Floor, error)
	SaveFloors(floors []models.Floor) error
	Transactions() ([]models.Transaction, error)
	SaveTransactions(transactions []models.Transaction) error
	Users() ([]models.User, error)
	SaveUsers(users []models.User) error
	Settings() (models.Settings, error)
	SaveSettings(settings models.Settings) error
}
