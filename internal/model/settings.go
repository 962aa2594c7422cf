package model

// NotificationSettings is process-wide reminder configuration. Each category
// is gated by its own flag and by the master Enabled flag.
type NotificationSettings struct {
	Enabled          bool `json:"enabled"`
	SoundEnabled     bool `json:"sound_enabled"`
	VibrationEnabled bool `json:"vibration_enabled"`

	ExpirationEnabled    bool   `json:"expiration_enabled"`
	DaysBeforeExpiration int    `json:"days_before_expiration"`
	DailySummaryEnabled  bool   `json:"daily_summary_enabled"`
	DailySummaryTime     string `json:"daily_summary_time"` // "HH:mm"

	ShoppingReminderEnabled bool   `json:"shopping_reminder_enabled"`
	ShoppingReminderTime    string `json:"shopping_reminder_time"` // "HH:mm"

	LowStockEnabled   bool `json:"low_stock_enabled"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

// AppSettings holds all runtime configuration stored in the settings table.
type AppSettings struct {
	Notifications         NotificationSettings `json:"notifications"`
	DefaultExpirationDays int                  `json:"default_expiration_days"`
}

// DefaultAppSettings returns the settings used until the user changes them.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Notifications: NotificationSettings{
			Enabled:                 true,
			SoundEnabled:            true,
			VibrationEnabled:        true,
			ExpirationEnabled:       true,
			DaysBeforeExpiration:    3,
			DailySummaryEnabled:     true,
			DailySummaryTime:        "09:00",
			ShoppingReminderEnabled: true,
			ShoppingReminderTime:    "18:00",
			LowStockEnabled:         true,
			LowStockThreshold:       1,
		},
		DefaultExpirationDays: 7,
	}
}
