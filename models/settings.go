package models

// Rates 每小時費率表；Minimum 是單次停車的最低收費
type Rates struct {
	Motor   float64 `json:"motor"`
	Car     float64 `json:"car"`
	Minimum float64 `json:"minimum"`
}

// Settings system-wide configuration. LastResetDate is a "2006-01-02" date string,
// nil until the first daily reset.
type Settings struct {
	Rates         Rates   `json:"rates"`
	LastResetDate *string `json:"last_reset_date"`
}

// DefaultSettings mirrors the rates the system ships with.
func DefaultSettings() Settings {
	return Settings{
		Rates: Rates{
			Motor:   2000,
			Car:     5000,
			Minimum: 5000,
		},
	}
}
