package services

import (
	"encoding/json"
	"sync"

	"parkirku/models"
)

// memStore is an in-memory Store for tests. Reads hand back deep copies so
// the read-modify-write contract of the real store holds: mutations are only
// visible after an explicit save. Guarded by a mutex like the real database,
// so concurrent-access tests stay race-clean.
type memStore struct {
	mu           sync.Mutex
	floors       []models.Floor
	transactions []models.Transaction
	users        []models.User
	settings     models.Settings
}

func newMemStore() *memStore {
	return &memStore{settings: models.DefaultSettings()}
}

func deepCopy[T any](in T) T {
	var out T
	payload, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		panic(err)
	}
	return out
}

func (m *memStore) Floors() ([]models.Floor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.floors), nil
}

func (m *memStore) SaveFloors(floors []models.Floor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floors = deepCopy(floors)
	return nil
}

func (m *memStore) Transactions() ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.transactions), nil
}

func (m *memStore) SaveTransactions(transactions []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = deepCopy(transactions)
	return nil
}

func (m *memStore) Users() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.users), nil
}

func (m *memStore) SaveUsers(users []models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = deepCopy(users)
	return nil
}

func (m *memStore) Settings() (models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.settings), nil
}

func (m *memStore) SaveSettings(settings models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = deepCopy(settings)
	return nil
}
