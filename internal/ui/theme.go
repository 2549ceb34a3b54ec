package ui

import (
	"strings"

	"github.com/idilsaglam/crms/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Warn, Peak                             string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymPeak                                string
	Colorless                              bool // never emit ANSI codes
	TypeColors                             map[model.ObservationType]string
	TypeSymbols                            map[model.ObservationType]string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: "\033[92m", Error: "\033[91m", Warn: "\033[93m",
			Peak:     "\033[1;95m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymPeak: "✦",
			TypeColors: map[model.ObservationType]string{
				model.Dry:          fgGray,
				model.Sticky:       "\033[93m",
				model.Creamy:       "\033[96m",
				model.Clear:        "\033[92m",
				model.Menstruation: "\033[91m",
				model.Spotting:     fgOrange,
			},
			TypeSymbols: defaultSymbols(),
		}
	case "mono":
		current = Theme{
			Name:      "mono",
			Colorless: true,
			CornerTL:  "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymPeak:    "P",
			TypeColors: map[model.ObservationType]string{},
			TypeSymbols: map[model.ObservationType]string{
				model.Dry:          "o",
				model.Sticky:       "s",
				model.Creamy:       "c",
				model.Clear:        "C",
				model.Menstruation: "M",
				model.Spotting:     ".",
			},
		}
	default: // classic
		current = Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Warn: fgYellow,
			Peak:     bold + fgMagenta,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymPeak: "★",
			TypeColors: map[model.ObservationType]string{
				model.Dry:          fgGray,
				model.Sticky:       fgYellow,
				model.Creamy:       fgYellow,
				model.Clear:        fgGreen,
				model.Menstruation: fgRed,
				model.Spotting:     fgOrange,
			},
			TypeSymbols: defaultSymbols(),
		}
	}
}

func defaultSymbols() map[model.ObservationType]string {
	m := make(map[model.ObservationType]string)
	for _, t := range model.AllTypes() {
		m[t] = t.Symbol()
	}
	return m
}

// Expose what renderers need
func Current() Theme { return current }

// Symbol is the theme's glyph for an observation type.
func (t Theme) Symbol(typ model.ObservationType) string {
	if s, ok := t.TypeSymbols[typ]; ok {
		return s
	}
	return "?"
}

// Color is the theme's color for an observation type.
func (t Theme) Color(typ model.ObservationType) string { return t.TypeColors[typ] }
