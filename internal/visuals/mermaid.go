package visuals

import (
	"fmt"
	"math"
	"strings"

	"impact-mcp/internal/impact"
)

// GenerateBenefitChart creates a Mermaid bar chart of the monthly benefit breakdown against deployment cost.
func GenerateBenefitChart(out impact.Outputs, deploymentCost float64) string {
	labels := []string{
		"\"Labor savings\"",
		"\"Approval benefit\"",
		"\"Gross benefits\"",
		"\"Deployment cost\"",
		"\"Net\"",
	}
	amounts := []float64{
		out.LaborSavingsUSD,
		out.RiskAdjustedBenefitUSD,
		out.GrossBenefitsUSD,
		deploymentCost,
		out.NetMonthlyUSD,
	}

	minY, maxY := axisBounds(amounts)
	if maxY == 0 && minY == 0 {
		return ""
	}

	var values []string
	for _, a := range amounts {
		values = append(values, fmt.Sprintf("%.0f", a))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Monthly Impact (USD)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"USD per month\" %d --> %d\n", minY, maxY))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateBenefitPie creates a Mermaid pie chart splitting gross benefits by source.
func GenerateBenefitPie(out impact.Outputs) string {
	if out.GrossBenefitsUSD <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Gross Benefit Sources\n")
	sb.WriteString(fmt.Sprintf("    \"Labor savings\" : %.2f\n", out.LaborSavingsUSD))
	sb.WriteString(fmt.Sprintf("    \"Avoided rejections (risk-adjusted)\" : %.2f\n", out.RiskAdjustedBenefitUSD))
	sb.WriteString("```")
	return sb.String()
}

// GenerateScenarioChart creates a Mermaid bar chart comparing the net monthly result of named scenarios.
func GenerateScenarioChart(names []string, outputs []impact.Outputs) string {
	if len(names) == 0 || len(names) != len(outputs) {
		return ""
	}

	var labels []string
	var nets []float64
	for i, name := range names {
		// Quotes break the axis label list
		safeName := strings.ReplaceAll(name, "\"", "'")
		labels = append(labels, fmt.Sprintf("\"%s\"", safeName))
		nets = append(nets, outputs[i].NetMonthlyUSD)
	}

	minY, maxY := axisBounds(nets)

	var values []string
	for _, n := range nets {
		values = append(values, fmt.Sprintf("%.0f", n))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Net Monthly Result by Scenario\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"USD per month\" %d --> %d\n", minY, maxY))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// axisBounds pads the value range by 10% and always includes zero.
func axisBounds(values []float64) (int, int) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return int(math.Floor(lo + lo/10)), int(math.Ceil(hi + hi/10))
}
