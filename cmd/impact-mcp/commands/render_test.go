package commands

import (
	"errors"
	"strings"
	"testing"

	"impact-mcp/internal/config"
	"impact-mcp/internal/impact"
	"impact-mcp/internal/report"
	"impact-mcp/internal/scenario"
)

func sampleEstimate(t *testing.T) *report.Estimate {
	t.Helper()
	est, err := report.Build("pilot", impact.Inputs{
		ReportsPerMonth:               40,
		CurrentRejectionRatePct:       15,
		ClinicianHourlyCostUSD:        75,
		MinutesPerReportNow:           45,
		MinutesPerReportTarget:        25,
		ExpectedRejectionReductionPct: 50,
		ValuePerOnTimeApprovalUSD:     120,
		MonthlyDeploymentCostUSD:      600,
		RiskLevel:                     impact.RiskMedium,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return est
}

func TestResolveRiskLevel(t *testing.T) {
	tests := []struct {
		flag    string
		want    impact.RiskLevel
		wantErr bool
	}{
		{"", impact.RiskHigh, false},
		{"low", impact.RiskLow, false},
		{"Medium", impact.RiskMedium, false},
		{"extreme", "", true},
	}
	for _, tt := range tests {
		got, err := resolveRiskLevel(tt.flag, impact.RiskHigh)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveRiskLevel(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveRiskLevel(%q) = %s, want %s", tt.flag, got, tt.want)
		}
	}
}

func TestRenderEstimate_Formats(t *testing.T) {
	est := sampleEstimate(t)
	tests := []struct {
		format string
		want   string
	}{
		{config.FormatJSON, `"net_monthly_usd":`},
		{config.FormatYAML, "net_monthly_usd:"},
		{config.FormatMarkdown, "|"},
	}
	for _, tt := range tests {
		got, err := renderEstimate(est, tt.format, false)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.format, err)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: expected output to contain %q, got:\n%s", tt.format, tt.want, got)
		}
	}

	if _, err := renderEstimate(est, "pdf", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderComparison_ReportsRejected(t *testing.T) {
	results := []scenario.Result{
		{Name: "pilot", Outputs: sampleEstimate(t).Outputs},
		{Name: "broken", Err: errors.New("invalid input reportsPerMonth: negative (got -1)")},
	}
	got, err := renderComparison(results, scenario.Columns(results), config.FormatMarkdown, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "broken rejected:") {
		t.Errorf("expected rejected scenario to be listed, got:\n%s", got)
	}

	got, err = renderComparison(results, scenario.Columns(results), config.FormatJSON, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `"error": "invalid input`) {
		t.Errorf("expected error field in JSON, got:\n%s", got)
	}
	if !strings.Contains(got, `"payback_months":`) || !strings.Contains(got, `"minutes_saved": 20`) {
		t.Errorf("expected flat output keys in JSON, got:\n%s", got)
	}
}
