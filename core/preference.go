package core

import "context"

const (
	// PreferenceDarkMode bool
	PreferenceDarkMode = "dark_mode"
	// PreferenceTheme theme name
	PreferenceTheme = "theme"
)

// Preferences dashboard ui state
type Preferences struct {
	DarkMode bool   `json:"dark_mode"`
	Theme    string `json:"theme"`
}

// IPreferenceService process-wide preferences, write-through to the property store
type IPreferenceService interface {
	Init(ctx context.Context) error
	Get() Preferences
	Update(ctx context.Context, key, value string) (Preferences, error)
}
