// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/key"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol in the registry.
type Icon int

// Registered icons.
const (
	Success Icon = iota
	Fail
	Play
	Pause
	Ad
	Skip
	Back
	Search
	Category
	Clock
	Progress
	Warn
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "OK", kaomoji: "(^▽^)", squares: "▣"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "X", kaomoji: "(×_×)", squares: "▨"},
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", kaomoji: "(ง'̀-'́)ง", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "\uf04c", plain: "||", kaomoji: "(-_-)zzz", squares: "▮▮"},
	Ad:       {emoji: "📢", nerd: "\uf0a1", plain: "AD", kaomoji: "(o^^)o", squares: "◩"},
	Skip:     {emoji: "⏭️", nerd: "\uf051", plain: ">>|", kaomoji: "ε=ε=┌(;・_・)┘", squares: "⏵⏵"},
	Back:     {emoji: "🔙", nerd: "\uf060", plain: "<-", kaomoji: "(⌒_⌒;)", squares: "◀"},
	Search:   {emoji: "🔍", nerd: "\uf002", plain: "?", kaomoji: "(・・?)", squares: "◎"},
	Category: {emoji: "🏷️", nerd: "\uf02b", plain: "#", kaomoji: "(・ω・)", squares: "◆"},
	Clock:    {emoji: "⏱️", nerd: "\uf017", plain: "@", kaomoji: "(⊙_◎)", squares: "◷"},
	Progress: {emoji: "⏳", nerd: "\uf110", plain: "...", kaomoji: "( ・_・)…", squares: "▤"},
	Warn:     {emoji: "⚠️", nerd: "\uf071", plain: "!", kaomoji: "(ﾟДﾟ;)", squares: "▲"},
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}
