package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"impact-mcp/internal/impact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
scenarios:
  - name: pilot
    inputs:
      reports_per_month: 40
      current_rejection_rate_pct: 15
      average_delay_days: 12
      clinician_hourly_cost_usd: 75
      minutes_per_report_now: 45
      minutes_per_report_target: 25
      expected_rejection_reduction_pct: 50
      value_per_on_time_approval_usd: 120
      monthly_deployment_cost_usd: 600
      risk_level: Medium
  - name: " free tier "
    inputs:
      reports_per_month: 40
      current_rejection_rate_pct: 15
      clinician_hourly_cost_usd: 75
      minutes_per_report_now: 45
      minutes_per_report_target: 25
      expected_rejection_reduction_pct: 50
      value_per_on_time_approval_usd: 120
      monthly_deployment_cost_usd: 0
      risk_level: low
`

func TestDecode(t *testing.T) {
	scenarios, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "pilot", scenarios[0].Name)
	assert.Equal(t, "free tier", scenarios[1].Name)
	assert.Equal(t, 40, scenarios[0].Inputs.ReportsPerMonth)
	assert.Equal(t, impact.RiskMedium, scenarios[0].Inputs.RiskLevel)
	assert.Equal(t, impact.RiskLevel("low"), scenarios[1].Inputs.RiskLevel)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"Empty", "scenarios: []\n", "no scenarios"},
		{"MissingName", "scenarios:\n  - inputs: {risk_level: Low}\n", "has no name"},
		{"Duplicate", "scenarios:\n  - name: a\n  - name: a\n", "duplicate scenario name: a"},
		{"UnknownField", "scenarios:\n  - name: a\n    inputs: {reports: 3}\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	scenarios, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEvaluate_PreservesOrderAndIsolatesErrors(t *testing.T) {
	base, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	var scenarios []Scenario
	for i := 0; i < 20; i++ {
		s := base[0]
		s.Name = fmt.Sprintf("s%02d", i)
		s.Inputs.ReportsPerMonth = i * 10
		if i == 7 {
			s.Inputs.RiskLevel = "Extreme"
		}
		scenarios = append(scenarios, s)
	}

	results, err := Evaluate(context.Background(), scenarios, 3)
	require.NoError(t, err)
	require.Len(t, results, 20)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("s%02d", i), r.Name)
		if i == 7 {
			var invalid *impact.InvalidInputError
			require.True(t, errors.As(r.Err, &invalid))
			assert.Equal(t, impact.FieldRiskLevel, invalid.Field)
			continue
		}
		require.NoError(t, r.Err)
		assert.InDelta(t, float64(i*10)*0.15*0.5, r.Outputs.AvoidedRejectionsPerMonth, 1e-9)
	}

	err = FirstError(results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario s07")

	cols := Columns(results)
	assert.Len(t, cols, 19)
}

func TestEvaluate_MatchesDirectCompute(t *testing.T) {
	scenarios, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	results, err := Evaluate(context.Background(), scenarios, 0)
	require.NoError(t, err)
	require.NoError(t, FirstError(results))

	for i, s := range scenarios {
		want, err := impact.Compute(s.Inputs)
		require.NoError(t, err)
		assert.Equal(t, want, results[i].Outputs)
	}
	assert.False(t, results[1].Outputs.ROIMonthly.IsDefined())
}

func TestEvaluate_CancelledContext(t *testing.T) {
	scenarios, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Evaluate(ctx, scenarios, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApplyDefaultRiskLevel(t *testing.T) {
	doc := `
scenarios:
  - name: implicit
    inputs:
      reports_per_month: 40
      current_rejection_rate_pct: 15
      clinician_hourly_cost_usd: 75
      minutes_per_report_now: 45
      minutes_per_report_target: 25
      expected_rejection_reduction_pct: 50
      value_per_on_time_approval_usd: 120
      monthly_deployment_cost_usd: 600
  - name: explicit
    inputs:
      reports_per_month: 40
      risk_level: Low
`
	scenarios, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, impact.RiskLevel(""), scenarios[0].Inputs.RiskLevel)

	ApplyDefaultRiskLevel(scenarios, impact.RiskHigh)
	assert.Equal(t, impact.RiskHigh, scenarios[0].Inputs.RiskLevel)
	assert.Equal(t, impact.RiskLevel("Low"), scenarios[1].Inputs.RiskLevel)

	results, err := Evaluate(context.Background(), scenarios, 1)
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
}
