package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#2C4A54")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Width(34)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	positiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	negativeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	noteStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

// Terminal renders a boxed plain-text summary for interactive use.
func (e *Estimate) Terminal() string {
	var sb strings.Builder

	title := e.Title
	if title == "" {
		title = "Impact & ROI estimate"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("risk level %s · estimate %s", e.Inputs.RiskLevel, e.ID)))
	sb.WriteString("\n\n")

	for _, f := range e.Outputs.Fields() {
		value := FormatField(f)
		if f.Key == "net_monthly_usd" {
			if e.Outputs.NetMonthlyUSD > 0 {
				value = positiveStyle.Render(value)
			} else {
				value = negativeStyle.Render(value)
			}
		}
		sb.WriteString(labelStyle.Render(f.Label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	for _, n := range Notes(e.Inputs, e.Outputs) {
		sb.WriteString("\n")
		sb.WriteString(noteStyle.Render("! " + n))
	}

	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
