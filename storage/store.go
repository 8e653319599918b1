package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parkirku/models"
	"parkirku/utils"
)

// 四個獨立的具名紀錄；每次寫入都整份重寫，不做部分更新
const (
	recordFloors       = "parkingFloors"
	recordTransactions = "transactions"
	recordUsers        = "users"
	recordSettings     = "settings"
)

// Record 單一具名紀錄，payload 為 JSON 字串
type Record struct {
	Name      string    `gorm:"primaryKey;size:50" json:"name"`
	Payload   string    `gorm:"type:longtext" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "store_records"
}

// Store 以 MySQL 為後端的鍵值儲存；純 get/set，不含業務邏輯
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the backing table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

func (s *Store) get(name string, out interface{}) (bool, error) {
	var record Record
	if err := s.db.Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read record %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(record.Payload), out); err != nil {
		return false, fmt.Errorf("failed to decode record %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) put(name string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", name, err)
	}
	record := Record{Name: name, Payload: string(payload), UpdatedAt: time.Now()}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to write record %s: %w", name, err)
	}
	return nil
}

// Floors reads the whole floor collection.
func (s *Store) Floors() ([]models.Floor, error) {
	floors := []models.Floor{}
	if _, err := s.get(recordFloors, &floors); err != nil {
		return nil, err
	}
	return floors, nil
}

// SaveFloors rewrites the whole floor collection.
func (s *Store) SaveFloors(floors []models.Floor) error {
	return s.put(recordFloors, floors)
}

// Transactions reads the whole transaction list.
func (s *Store) Transactions() ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if _, err := s.get(recordTransactions, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// SaveTransactions rewrites the whole transaction list.
func (s *Store) SaveTransactions(transactions []models.Transaction) error {
	return s.put(recordTransactions, transactions)
}

// Users reads the user list.
func (s *Store) Users() ([]models.User, error) {
	users := []models.User{}
	if _, err := s.get(recordUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUsers rewrites the user list.
func (s *Store) SaveUsers(users []models.User) error {
	return s.put(recordUsers, users)
}

// Settings reads the settings object, falling back to defaults when unset.
func (s *Store) Settings() (models.Settings, error) {
	settings := models.DefaultSettings()
	if _, err := s.get(recordSettings, &settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// SaveSettings rewrites the settings object.
func (s *Store) SaveSettings(settings models.Settings) error {
	return s.put(recordSettings, settings)
}

// Seed writes the default dataset for any record that does not exist yet:
// two floors (motor and car, 5 rows x 10 cols), the default rate table and the
// built-in operator accounts.
func (s *Store) Seed() error {
	var floors []models.Floor
	exists, err := s.get(recordFloors, &floors)
	if err != nil {
		return err
	}
	if !exists {
		defaults := []models.Floor{
			models.NewFloor("F1", "Lantai 1", models.VehicleTypeMotor, 5, 10),
			models.NewFloor("F2", "Lantai 2", models.VehicleTypeCar, 5, 10),
		}
		if err := s.SaveFloors(defaults); err != nil {
			return err
		}
		log.Printf("Seeded %d default floors", len(defaults))
	}

	var transactions []models.Transaction
	exists, err = s.get(recordTransactions, &transactions)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.SaveTransactions([]models.Transaction{}); err != nil {
			return err
		}
	}

	var users []models.User
	exists, err = s.get(recordUsers, &users)
	if err != nil {
		return err
	}
	if !exists {
		adminHash, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		operatorHash, err := utils.HashPassword("parkir123")
		if err != nil {
			return err
		}
		defaults := []models.User{
			{Username: "admin", Password: adminHash, Role: "admin", Name: "Administrator"},
			{Username: "juru_parkir", Password: operatorHash, Role: "juru_parkir", Name: "Juru Parkir"},
		}
		if err := s.SaveUsers(defaults); err != nil {
			return err
		}
		log.Printf("Seeded %d default users", len(defaults))
	}

	var settings models.Settings
	exists, err = s.get(recordSettings, &settings)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return err
		}
		log.Println("Seeded default settings")
	}

	return nil
}
