package domain

import "errors"

// DefaultLanguage applies when no language has been persisted.
const DefaultLanguage = "en"

var ErrInvalidLanguage = errors.New("invalid language tag")

// Preferences are the display settings of a client, independent of authentication.
type Preferences struct {
	DarkMode   bool   `json:"darkMode"`
	LargeFonts bool   `json:"largeFonts"`
	Language   string `json:"language"`
}

// DefaultPreferences returns the settings used when storage is empty.
func DefaultPreferences() Preferences {
	return Preferences{Language: DefaultLanguage}
}

// Theme names the palette the client renders with.
func (p Preferences) Theme() string {
	name := "light"
	if p.DarkMode {
		name = "dark"
	}
	if p.LargeFonts {
		name += "-large"
	}
	return name
}
