package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tone picks the value styling for a summary row.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneWarn
)

type SummaryRow struct {
	Label string
	Value string
	Tone  Tone
}

var (
	neutralValueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	goodValueStyle    = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	warnValueStyle    = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)
)

func (t Tone) style() lipgloss.Style {
	switch t {
	case ToneGood:
		return goodValueStyle
	case ToneWarn:
		return warnValueStyle
	default:
		return neutralValueStyle
	}
}

// RenderSummary draws the end-of-run table: per-outcome counts and the space
// statistics block.
func RenderSummary(rows []SummaryRow) string {
	labelWidth, valueWidth := columnWidths(rows)

	var b strings.Builder
	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	b.WriteString(hline)
	b.WriteByte('\n')
	for _, row := range rows {
		fmt.Fprintf(&b, "%s | %s\n",
			labelStyle.Render(padRight(row.Label, labelWidth)),
			row.Tone.style().Render(padRight(row.Value, valueWidth)))
	}
	b.WriteString(hline)
	return b.String()
}

func columnWidths(rows []SummaryRow) (label, value int) {
	for _, row := range rows {
		label = max(label, len(row.Label))
		value = max(value, len(row.Value))
	}
	return label, value
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
