package cli

import "github.com/charmbracelet/lipgloss"

// Color scheme inspired by Cargo/rustc.
// Uses ANSI 256 colors for broad terminal compatibility.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	// Error code style (e.g., E8004)
	styleCode = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	stylePipe     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleFilePath = lipgloss.NewStyle().Bold(true)

	styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// render applies style when colors are enabled.
func render(style lipgloss.Style, s string) string {
	if !EnableColors() {
		return s
	}
	return style.Render(s)
}

// Error returns text styled as an error label.
func Error(s string) string { return render(styleError, s) }

// Warning returns text styled as a warning label.
func Warning(s string) string { return render(styleWarning, s) }

// Note returns text styled as a note label.
func Note(s string) string { return render(styleNote, s) }

// Help returns text styled as a help label.
func Help(s string) string { return render(styleHelp, s) }

// Success returns text styled as a success label.
func Success(s string) string { return render(styleSuccess, s) }

// Code returns text styled as an error code.
func Code(s string) string { return render(styleCode, s) }

// Pipe returns the gutter pipe used under diagnostics.
func Pipe() string { return render(stylePipe, "|") }

// Arrow returns the location arrow used in diagnostics.
func Arrow() string { return render(stylePipe, "-->") }

// FilePath returns text styled as a file path or table location.
func FilePath(s string) string { return render(styleFilePath, s) }

// Highlight returns highlighted text.
func Highlight(s string) string { return render(styleHighlight, s) }
