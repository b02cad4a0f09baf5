package models

type Settings struct {
	Currency        string `json:"currency"`
	DefaultMinStock int    `json:"defaultMinStock"`
	LowStockAlerts  bool   `json:"lowStockAlerts"`
}

// DefaultSettings are the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		Currency:        "USD",
		DefaultMinStock: 5,
		LowStockAlerts:  true,
	}
}
