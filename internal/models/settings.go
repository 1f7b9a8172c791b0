package models

// Theme represents the color theme of the client
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Language represents the interface language
type Language string

const (
	LanguageArabic Language = "ar"
	LanguageFrench Language = "fr"
)

// Settings represents per-device user preferences
type Settings struct {
	Theme         Theme    `json:"theme"`         // Default: "dark"
	Language      Language `json:"language"`      // Default: "ar"
	Notifications bool     `json:"notifications"` // Default: true
}

// DefaultSettings returns the settings used when none were saved
func DefaultSettings() *Settings {
	return &Settings{
		Theme:         ThemeDark,
		Language:      LanguageArabic,
		Notifications: true,
	}
}
