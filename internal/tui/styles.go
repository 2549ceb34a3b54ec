package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/crms/internal/model"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	bigStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	tipStyle     = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("205")).
			PaddingLeft(1)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	todayStyle    = lipgloss.NewStyle().Underline(true).Bold(true)
	outsideStyle  = lipgloss.NewStyle().Faint(true)
	peakStyle     = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("163"))

	boxChecked   = "☑"
	boxUnchecked = "☐"
	radioOn      = "◉"
	radioOff     = "○"
)

var typeStyles = map[model.ObservationType]lipgloss.Style{
	model.Dry:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	model.Sticky:       lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	model.Creamy:       lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	model.Clear:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	model.Menstruation: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	model.Spotting:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

func typeStyle(t model.ObservationType) lipgloss.Style {
	if s, ok := typeStyles[t]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// badge renders "<symbol> <Label>" in the type's color.
func badge(t model.ObservationType) string {
	return typeStyle(t).Render(t.Symbol() + " " + t.Label())
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

func sectionTitle(s string) string { return accentStyle.Bold(true).Render(s) }
