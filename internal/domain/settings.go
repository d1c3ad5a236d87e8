package domain

const (
	MinGridDensity     = 2
	MaxGridDensity     = 6
	DefaultGridDensity = 3
)

// Settings are the user's display preferences
type Settings struct {
	GridDensity       int    `json:"gridDensity"`
	DarkMode          bool   `json:"darkMode"`
	DefaultSearchTerm string `json:"defaultSearchTerm"`
}

// DefaultSettings returns the settings used before anything is saved
func DefaultSettings() Settings {
	return Settings{GridDensity: DefaultGridDensity}
}

// Normalized clamps the grid density into its valid range
func (s Settings) Normalized() Settings {
	switch {
	case s.GridDensity == 0:
		s.GridDensity = DefaultGridDensity
	case s.GridDensity < MinGridDensity:
		s.GridDensity = MinGridDensity
	case s.GridDensity > MaxGridDensity:
		s.GridDensity = MaxGridDensity
	}
	return s
}
