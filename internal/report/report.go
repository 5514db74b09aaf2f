// Package report turns computed estimates into exportable documents.
// The estimator itself never formats anything; everything here works from
// the flat field list exposed by impact.Outputs.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"impact-mcp/internal/impact"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	now   = time.Now
	newID = uuid.NewString
)

// Estimate is one computed record together with the inputs that produced it.
type Estimate struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Inputs      impact.Inputs  `json:"inputs" yaml:"inputs"`
	Outputs     impact.Outputs `json:"outputs" yaml:"outputs"`
}

// Build computes the outputs for in and wraps them for export.
func Build(title string, in impact.Inputs) (*Estimate, error) {
	out, err := impact.Compute(in)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		ID:          newID(),
		Title:       title,
		GeneratedAt: now().UTC(),
		Inputs:      in,
		Outputs:     out,
	}, nil
}

// JSON renders the estimate as indented JSON. Undefined outputs become null.
func (e *Estimate) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode estimate %s: %w", e.ID, err)
	}
	return out, nil
}

// YAML renders the estimate as YAML. Undefined outputs become null.
func (e *Estimate) YAML() ([]byte, error) {
	out, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode estimate %s: %w", e.ID, err)
	}
	return out, nil
}

// InputRow is one labelled input value for display.
type InputRow struct {
	Key   string
	Label string
	Value string
}

// InputRows lists the inputs in display order.
func InputRows(in impact.Inputs) []InputRow {
	return []InputRow{
		{"reports_per_month", "Reports per month", fmt.Sprintf("%d", in.ReportsPerMonth)},
		{"current_rejection_rate_pct", "Current rejection rate", formatPct(in.CurrentRejectionRatePct)},
		{"average_delay_days", "Average delay", fmt.Sprintf("%s days", formatNumber(in.AverageDelayDays))},
		{"clinician_hourly_cost_usd", "Clinician hourly cost", formatUSD(in.ClinicianHourlyCostUSD)},
		{"minutes_per_report_now", "Minutes per report (now)", fmt.Sprintf("%d", in.MinutesPerReportNow)},
		{"minutes_per_report_target", "Minutes per report (target)", fmt.Sprintf("%d", in.MinutesPerReportTarget)},
		{"expected_rejection_reduction_pct", "Expected rejection reduction", formatPct(in.ExpectedRejectionReductionPct)},
		{"value_per_on_time_approval_usd", "Value per on-time approval", formatUSD(in.ValuePerOnTimeApprovalUSD)},
		{"monthly_deployment_cost_usd", "Monthly deployment cost", formatUSD(in.MonthlyDeploymentCostUSD)},
		{"risk_level", "Risk level", string(in.RiskLevel)},
	}
}
