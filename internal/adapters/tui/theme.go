// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles are the lipgloss styles derived from a theme.
type styles struct {
	title  lipgloss.Style
	accent lipgloss.Style
	active lipgloss.Style
	text   lipgloss.Style
	help   lipgloss.Style
	paused lipgloss.Style
	err    lipgloss.Style
	tab    lipgloss.Style
	tabOn  lipgloss.Style
}

func newStyles(t config.ThemeConfig) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorTitle)),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorAccent)),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorPrimary)),
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorText)),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorHelp)),
		paused: lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorPaused)),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		tab:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(t.ColorHelp)),
		tabOn: lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(t.ColorPrimary)),
	}
}

// phaseColor returns the color of a breathing phase.
func phaseColor(t config.ThemeConfig, phase string) lipgloss.Color {
	switch phase {
	case "inhale":
		return lipgloss.Color(t.ColorInhale)
	case "hold":
		return lipgloss.Color(t.ColorHold)
	case "exhale":
		return lipgloss.Color(t.ColorExhale)
	default:
		return lipgloss.Color(t.ColorPrimary)
	}
}
