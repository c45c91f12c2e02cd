package models

// Theme is the device-local display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings are device-local preferences. They live in local storage
// regardless of session state and are never synced remotely.
type Settings struct {
	Theme             Theme  `json:"theme"`
	Name              string `json:"name"`
	HasSeenOnboarding bool   `json:"hasSeenOnboarding"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeLight,
		Name:              "User",
		HasSeenOnboarding: false,
	}
}

type SettingsPatch struct {
	Theme             *Theme  `json:"theme"`
	Name              *string `json:"name"`
	HasSeenOnboarding *bool   `json:"hasSeenOnboarding"`
}

func (p SettingsPatch) Apply(s *Settings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.HasSeenOnboarding != nil {
		s.HasSeenOnboarding = *p.HasSeenOnboarding
	}
}
