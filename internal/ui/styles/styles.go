// Package styles provides shared lipgloss styles for githooks output.
//
// Colors come from the active Theme; call Init once after loading config.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme.
var (
	Primary color.Color = DefaultTheme.Primary
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Warning color.Color = DefaultTheme.Warning
	Muted   color.Color = DefaultTheme.Muted
	Normal  color.Color = DefaultTheme.Normal
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)

	// OutputStyle indents captured script output under its status line
	OutputStyle = lipgloss.NewStyle().Foreground(Normal).PaddingLeft(4)
)
