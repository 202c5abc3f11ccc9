// Package color names the terminal colors used for CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// High intensity variants.
var (
	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange marks ad breaks and the primary action.
var Orange = New("#ffb703")
