package commands

import (
	"fmt"
	"strconv"
	"strings"

	"impact-mcp/internal/impact"

	"github.com/charmbracelet/huh"
)

// promptInputs collects a full Inputs record through a terminal form.
// Fields start from whatever was passed as flags.
func promptInputs(in *impact.Inputs, defaultLevel impact.RiskLevel) error {
	reports := strconv.Itoa(in.ReportsPerMonth)
	rejection := formatFloat(in.CurrentRejectionRatePct)
	delay := formatFloat(in.AverageDelayDays)
	hourly := formatFloat(in.ClinicianHourlyCostUSD)
	minutesNow := strconv.Itoa(in.MinutesPerReportNow)
	minutesTarget := strconv.Itoa(in.MinutesPerReportTarget)
	reduction := formatFloat(in.ExpectedRejectionReductionPct)
	approval := formatFloat(in.ValuePerOnTimeApprovalUSD)
	cost := formatFloat(in.MonthlyDeploymentCostUSD)
	level := string(defaultLevel)
	if in.RiskLevel != "" {
		level = string(in.RiskLevel)
	}

	var levelOptions []huh.Option[string]
	for _, l := range impact.RiskLevels() {
		factor, _ := impact.RiskFactor(l)
		levelOptions = append(levelOptions, huh.NewOption(fmt.Sprintf("%s (x%.1f)", l, factor), string(l)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Reports per month").Value(&reports).Validate(validateInt),
			huh.NewInput().Title("Current rejection rate (%)").Value(&rejection).Validate(validatePct),
			huh.NewInput().Title("Average delay (days)").Value(&delay).Validate(validateFloat),
			huh.NewInput().Title("Clinician hourly cost (USD)").Value(&hourly).Validate(validateFloat),
		).Title("Current situation"),
		huh.NewGroup(
			huh.NewInput().Title("Minutes per report today").Value(&minutesNow).Validate(validateInt),
			huh.NewInput().Title("Target minutes per report").Value(&minutesTarget).Validate(validateInt),
			huh.NewInput().Title("Expected rejection reduction (%)").Value(&reduction).Validate(validatePct),
			huh.NewInput().Title("Value per on-time approval (USD)").Value(&approval).Validate(validateFloat),
			huh.NewInput().Title("Monthly deployment cost (USD)").Value(&cost).Validate(validateFloat),
			huh.NewSelect[string]().Title("Risk level").Options(levelOptions...).Value(&level),
		).Title("Target and costs"),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("input form aborted: %w", err)
	}

	// Values were validated by the form.
	in.ReportsPerMonth, _ = strconv.Atoi(strings.TrimSpace(reports))
	in.CurrentRejectionRatePct, _ = parseFloat(rejection)
	in.AverageDelayDays, _ = parseFloat(delay)
	in.ClinicianHourlyCostUSD, _ = parseFloat(hourly)
	in.MinutesPerReportNow, _ = strconv.Atoi(strings.TrimSpace(minutesNow))
	in.MinutesPerReportTarget, _ = strconv.Atoi(strings.TrimSpace(minutesTarget))
	in.ExpectedRejectionReductionPct, _ = parseFloat(reduction)
	in.ValuePerOnTimeApprovalUSD, _ = parseFloat(approval)
	in.MonthlyDeploymentCostUSD, _ = parseFloat(cost)
	in.RiskLevel = impact.RiskLevel(level)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func validateInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateFloat(s string) error {
	v, err := parseFloat(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validatePct(s string) error {
	v, err := parseFloat(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}
