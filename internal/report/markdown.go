package report

import (
	"fmt"
	"strings"

	"impact-mcp/internal/impact"
	"impact-mcp/internal/visuals"
)

// Markdown renders the estimate as a Markdown document, optionally with Mermaid charts.
func (e *Estimate) Markdown(withCharts bool) string {
	var sb strings.Builder

	title := e.Title
	if title == "" {
		title = "Impact & ROI estimate"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("_Estimate %s, generated %s_\n\n", e.ID, e.GeneratedAt.Format("2006-01-02 15:04 MST")))

	sb.WriteString("## Inputs\n\n")
	sb.WriteString("| Input | Value |\n|---|---|\n")
	for _, row := range InputRows(e.Inputs) {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", row.Label, row.Value))
	}

	sb.WriteString("\n## Monthly impact\n\n")
	sb.WriteString(outputTable(e.Outputs))

	if notes := Notes(e.Inputs, e.Outputs); len(notes) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, n := range notes {
			sb.WriteString(fmt.Sprintf("- %s\n", n))
		}
	}

	if withCharts {
		if chart := visuals.GenerateBenefitChart(e.Outputs, e.Inputs.MonthlyDeploymentCostUSD); chart != "" {
			sb.WriteString("\n")
			sb.WriteString(chart)
			sb.WriteString("\n")
		}
		if pie := visuals.GenerateBenefitPie(e.Outputs); pie != "" {
			sb.WriteString("\n")
			sb.WriteString(pie)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func outputTable(out impact.Outputs) string {
	var sb strings.Builder
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	for _, f := range out.Fields() {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", f.Label, FormatField(f)))
	}
	return sb.String()
}

// Notes explains degenerate results so a reader does not mistake "n/a" for zero.
func Notes(in impact.Inputs, out impact.Outputs) []string {
	var notes []string
	if in.MinutesPerReportTarget > in.MinutesPerReportNow {
		notes = append(notes, fmt.Sprintf("Target of %d min per report exceeds the current %d min; labor savings are counted as zero.", in.MinutesPerReportTarget, in.MinutesPerReportNow))
	}
	if !out.ROIMonthly.IsDefined() {
		notes = append(notes, "ROI is not applicable because the monthly deployment cost is zero.")
	}
	if !out.PaybackMonths.IsDefined() {
		notes = append(notes, "Payback is not applicable because monthly benefits do not exceed the deployment cost.")
	}
	return notes
}

// Column is one named estimate in a side-by-side comparison.
type Column struct {
	Name    string
	Outputs impact.Outputs
}

// ComparisonMarkdown renders estimates side by side, one column per scenario.
func ComparisonMarkdown(cols []Column, withCharts bool) string {
	if len(cols) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("| Metric |")
	for _, c := range cols {
		sb.WriteString(fmt.Sprintf(" %s |", escapeCell(c.Name)))
	}
	sb.WriteString("\n|---|")
	for range cols {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	labels := cols[0].Outputs.Fields()
	for i, label := range labels {
		sb.WriteString(fmt.Sprintf("| %s |", label.Label))
		for _, c := range cols {
			sb.WriteString(fmt.Sprintf(" %s |", FormatField(c.Outputs.Fields()[i])))
		}
		sb.WriteString("\n")
	}

	if withCharts {
		names := make([]string, len(cols))
		outs := make([]impact.Outputs, len(cols))
		for i, c := range cols {
			names[i] = c.Name
			outs[i] = c.Outputs
		}
		if chart := visuals.GenerateScenarioChart(names, outs); chart != "" {
			sb.WriteString("\n")
			sb.WriteString(chart)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// escapeCell keeps user text from splitting a table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
