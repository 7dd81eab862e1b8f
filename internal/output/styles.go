package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/convlog/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Level styles
	Critical lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	// Component styles
	Path lipgloss.Style
	Step lipgloss.Style

	// Summary styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Caution lipgloss.Style
	Danger  lipgloss.Style

	// TUI styles
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}{
	// Levels
	Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true), // Magenta bold underline
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),                 // Red bold
	Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),                            // Orange

	// Components
	Path: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
	Step: lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green

	// Summary
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Caution: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red

	// TUI
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	StatusBar: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1),
	Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// LevelStyle returns the style for a level
func LevelStyle(level domain.Level) lipgloss.Style {
	switch level {
	case domain.LevelCritical:
		return Styles.Critical
	case domain.LevelError:
		return Styles.Error
	case domain.LevelWarning:
		return Styles.Warning
	default:
		return lipgloss.NewStyle()
	}
}

// LevelIndicator returns a short styled level tag
func LevelIndicator(level domain.Level) string {
	style := LevelStyle(level)
	switch level {
	case domain.LevelCritical:
		return style.Render("CRT")
	case domain.LevelError:
		return style.Render("ERR")
	case domain.LevelWarning:
		return style.Render("WRN")
	default:
		return style.Render("???")
	}
}

// StatusStyle returns a style based on the most severe level present
func StatusStyle(s domain.Summary) lipgloss.Style {
	switch {
	case s.Count(domain.LevelCritical) > 0:
		return Styles.Danger
	case s.Count(domain.LevelError) > 0:
		return Styles.Caution
	default:
		return Styles.Success
	}
}

// StatusText returns plain status text for a summary
func StatusText(s domain.Summary) string {
	switch {
	case s.Count(domain.LevelCritical) > 0:
		return "CRITICAL ISSUES DETECTED"
	case s.Count(domain.LevelError) > 0:
		return "ERRORS DETECTED"
	case s.Count(domain.LevelWarning) > 0:
		return "WARNINGS ONLY"
	default:
		return "OK"
	}
}
