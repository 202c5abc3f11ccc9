package style

import "github.com/charmbracelet/lipgloss"

// Base tones of the browse and player screens.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")

	Mauve  = lipgloss.Color("#cba6f7")
	Red    = lipgloss.Color("#f38ba8")
	Peach  = lipgloss.Color("#fab387")
	Yellow = lipgloss.Color("#f9e2af")
	Green  = lipgloss.Color("#a6e3a1")
	Teal   = lipgloss.Color("#94e2d5")
)

// Semantic roles.
var (
	AccentColor  = Mauve
	SuccessColor = Green
	ErrorColor   = Red
	HiRed        = Red
	FaintColor   = Overlay
)

// Ad break banners, one tone per slot so a viewer can tell them apart at a glance.
var (
	PreRollColor  = Peach
	MidRollColor  = Yellow
	PostRollColor = Teal
)
