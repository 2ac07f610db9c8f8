// Package icon renders UI symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns all supported icon variants.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Play Icon = iota + 1
	Pause
	Busy
	Music
	Search
	Info
	Warning
	Fail
	Success
	Progress
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "\uf04c", plain: "||", squares: "⏸"},
	Busy:     {emoji: "⏳", nerd: "\uf110", plain: "...", squares: "◌"},
	Music:    {emoji: "🎵", nerd: "\uf001", plain: "~", squares: "♪"},
	Search:   {emoji: "🔍", nerd: "\uf002", plain: "?", squares: "◎"},
	Info:     {emoji: "💬", nerd: "\uf05a", plain: "i", squares: "■"},
	Warning:  {emoji: "⚠️", nerd: "\uf071", plain: "!", squares: "▲"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "x", squares: "✖"},
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "ok", squares: "✔"},
	Progress: {emoji: "⏳", nerd: "\uf254", plain: "*", squares: "◷"},
}

// Get returns the rendered symbol for i.
func Get(i Icon) string {
	return icons[i].get()
}
