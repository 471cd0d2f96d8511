package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/palotasb/githooks/internal/hooks"
)

// Status symbols
const (
	SymbolPassed      = "✓"
	SymbolFailed      = "✗"
	SymbolWarning     = "!"
	SymbolTimedOut    = "⏱"
	SymbolInterrupted = "⊘"
	SymbolSkipped     = "○"
)

// StatusSymbol returns the symbol for an entry outcome. Failures of advisory
// entries get the warning symbol since they do not block git.
func StatusSymbol(status hooks.Status, fatal bool) string {
	switch status {
	case hooks.StatusPassed:
		return SymbolPassed
	case hooks.StatusTimedOut:
		return SymbolTimedOut
	case hooks.StatusInterrupted:
		return SymbolInterrupted
	default:
		if !fatal {
			return SymbolWarning
		}
		return SymbolFailed
	}
}

// StatusStyle returns the style used to render an outcome.
func StatusStyle(status hooks.Status, fatal bool) lipgloss.Style {
	switch {
	case status == hooks.StatusPassed:
		return SuccessStyle
	case !fatal && status != hooks.StatusInterrupted:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// VerdictStyle returns the style for the run summary line.
func VerdictStyle(v hooks.Verdict) lipgloss.Style {
	switch v {
	case hooks.VerdictPassed:
		return SuccessStyle
	case hooks.VerdictFailed:
		return ErrorStyle
	default:
		return MutedStyle
	}
}
