package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorMuted     = lipgloss.Color("8")  // Gray
	colorHighlight = lipgloss.Color("14") // Cyan
	colorWhite     = lipgloss.Color("15") // White
)

// StyledTable is a table with rounded borders on a terminal and a plain
// column layout elsewhere.
type StyledTable struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewStyledTable creates a new styled table.
func NewStyledTable(headers ...string) *StyledTable {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &StyledTable{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row. Missing cells are blank and extra cells are dropped.
func (t *StyledTable) AddRow(cells ...string) {
	for len(cells) < len(t.headers) {
		cells = append(cells, "")
	}
	cells = cells[:len(t.headers)]
	for i, cell := range cells {
		if w := lipgloss.Width(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *StyledTable) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *StyledTable) String() string {
	if len(t.headers) == 0 {
		return ""
	}
	if !EnableColors() {
		return t.renderPlain()
	}
	return t.renderStyled()
}

func (t *StyledTable) renderPlain() string {
	var b strings.Builder

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(padRight(cell, t.widths[i]))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}

func (t *StyledTable) renderStyled() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
	borderStyle := lipgloss.NewStyle().Foreground(colorMuted)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite)

	totalWidth := -1
	for _, w := range t.widths {
		totalWidth += w + 3
	}

	writeRow := func(cells []string, style lipgloss.Style) {
		b.WriteString(borderStyle.Render("│") + " ")
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(borderStyle.Render(" │ "))
			}
			b.WriteString(style.Render(padRight(cell, t.widths[i])))
		}
		b.WriteString(" " + borderStyle.Render("│") + "\n")
	}

	b.WriteString(borderStyle.Render("╭"+strings.Repeat("─", totalWidth+2)+"╮") + "\n")
	writeRow(t.headers, headerStyle)
	b.WriteString(borderStyle.Render("├"+strings.Repeat("─", totalWidth+2)+"┤") + "\n")
	for _, row := range t.rows {
		writeRow(row, cellStyle)
	}
	b.WriteString(borderStyle.Render("╰"+strings.Repeat("─", totalWidth+2)+"╯") + "\n")

	return b.String()
}

// padRight pads s to width display cells, ignoring escape codes.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// FormatCount formats a count with singular/plural noun.
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Muted renders muted text.
func Muted(s string) string {
	return render(lipgloss.NewStyle().Foreground(colorMuted), s)
}
