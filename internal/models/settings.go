package models

import "fmt"

// Theme is the persisted display theme. It travels with the settings row
// rather than living in ambient global state.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings holds the single application-settings row.
type Settings struct {
	Theme Theme `db:"theme" json:"theme"`
}

// Validate rejects unknown theme values.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, s.Theme)
	}
}
