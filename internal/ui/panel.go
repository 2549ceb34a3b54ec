package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/crms/internal/model"
)

// visible width, ANSI-aware and wide-rune aware
func width(s string) int { return lipgloss.Width(s) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, barWidth int) string {
	if total <= 0 {
		total = 1
	}
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(float64(done) / float64(total) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// PanelString frames lines in a box using the current theme.
func PanelString(lines []string) string {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := width(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	var b strings.Builder
	b.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		b.WriteString(t.V + " " + pad(ln) + " " + t.V + "\n")
	}
	b.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return b.String()
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	fmt.Fprint(stdout, PanelString(lines))
}

// TypeBadge is the colored "<symbol> <Label>" for an observation type.
func TypeBadge(typ model.ObservationType) string {
	t := Current()
	return C(t.Color(typ), t.Symbol(typ)+" "+typ.Label())
}

// Truncate shortens s to at most n visible runes, adding "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
