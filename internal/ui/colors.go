package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/fanstats/internal/models"
)

var (
	styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

	_ Painter = (*Palette)(nil)
)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	selected lipgloss.Style
	header   lipgloss.Style
	tab      lipgloss.Style
	active   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		selected: lipgloss.NewStyle().Reverse(true),
		header:   NewBold(h).Underline(true),
		tab:      NewStyle(h).Padding(0, 1),
		active:   NewBold(t).Padding(0, 1).Underline(true),
	}
}

// On renders s on a background color.
func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

// As renders s in a foreground color.
func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// TierStyle renders text in a goal tier's color.
func TierStyle(level models.GoalLevel) lipgloss.Style {
	return NewBold(level.Color)
}

// ProgressBar draws percent (0-100) as a bar of width cells.
func ProgressBar(percent, width int, fill lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return fill.Render(strings.Repeat("█", filled)) + styles.help.Render(strings.Repeat("░", width-filled))
}
