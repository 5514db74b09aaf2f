package impact

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func baseline() Inputs {
	return Inputs{
		ReportsPerMonth:               40,
		CurrentRejectionRatePct:       15,
		AverageDelayDays:              12,
		ClinicianHourlyCostUSD:        75,
		MinutesPerReportNow:           45,
		MinutesPerReportTarget:        25,
		ExpectedRejectionReductionPct: 50,
		ValuePerOnTimeApprovalUSD:     120,
		MonthlyDeploymentCostUSD:      600,
		RiskLevel:                     RiskMedium,
	}
}

func TestCompute_Baseline(t *testing.T) {
	out, err := Compute(baseline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.MinutesSaved != 20 {
		t.Errorf("MinutesSaved = %d, want 20", out.MinutesSaved)
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"HoursSavedPerMonth", out.HoursSavedPerMonth, 40.0 * 20.0 / 60.0},
		{"LaborSavingsUSD", out.LaborSavingsUSD, 1000},
		{"AvoidedRejectionsPerMonth", out.AvoidedRejectionsPerMonth, 3},
		{"RiskAdjustedBenefitUSD", out.RiskAdjustedBenefitUSD, 252},
		{"GrossBenefitsUSD", out.GrossBenefitsUSD, 1252},
		{"NetMonthlyUSD", out.NetMonthlyUSD, 652},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	roi, ok := out.ROIMonthly.Get()
	if !ok {
		t.Fatal("expected ROI to be defined")
	}
	if !approx(roi, 652.0/600.0) {
		t.Errorf("ROIMonthly = %v, want %v", roi, 652.0/600.0)
	}
	if math.Round(roi*1000)/10 != 108.7 {
		t.Errorf("ROI percentage = %.1f%%, want 108.7%%", roi*100)
	}

	payback, ok := out.PaybackMonths.Get()
	if !ok {
		t.Fatal("expected payback to be defined")
	}
	if !approx(payback, 600.0/652.0) {
		t.Errorf("PaybackMonths = %v, want %v", payback, 600.0/652.0)
	}
}

func TestCompute_ZeroDeploymentCost(t *testing.T) {
	in := baseline()
	in.MonthlyDeploymentCostUSD = 0

	out, err := Compute(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ROIMonthly.IsDefined() {
		t.Errorf("expected undefined ROI, got %v", out.ROIMonthly)
	}
	if out.ROIMonthly == Defined(0) {
		t.Error("undefined ROI must be distinguishable from zero")
	}
	// Net is positive, so payback is defined and zero months.
	if got, ok := out.PaybackMonths.Get(); !ok || got != 0 {
		t.Errorf("PaybackMonths = %v (defined=%v), want 0", got, ok)
	}
}

func TestCompute_TargetExceedsCurrent(t *testing.T) {
	in := baseline()
	in.MinutesPerReportNow = 45
	in.MinutesPerReportTarget = 60

	out, err := Compute(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.MinutesSaved != 0 {
		t.Errorf("MinutesSaved = %d, want 0", out.MinutesSaved)
	}
	if out.HoursSavedPerMonth != 0 {
		t.Errorf("HoursSavedPerMonth = %v, want 0", out.HoursSavedPerMonth)
	}
	if out.LaborSavingsUSD != 0 {
		t.Errorf("LaborSavingsUSD = %v, want 0", out.LaborSavingsUSD)
	}
}

func TestCompute_ZeroReports(t *testing.T) {
	in := baseline()
	in.ReportsPerMonth = 0

	out, err := Compute(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AvoidedRejectionsPerMonth != 0 || out.RiskAdjustedBenefitUSD != 0 {
		t.Errorf("expected no avoided rejections, got %v / %v", out.AvoidedRejectionsPerMonth, out.RiskAdjustedBenefitUSD)
	}
	if out.HoursSavedPerMonth != 0 || out.LaborSavingsUSD != 0 {
		t.Errorf("expected no labor savings, got %v h / %v USD", out.HoursSavedPerMonth, out.LaborSavingsUSD)
	}
	if out.GrossBenefitsUSD != out.LaborSavingsUSD {
		t.Errorf("GrossBenefitsUSD = %v, want %v", out.GrossBenefitsUSD, out.LaborSavingsUSD)
	}
	if out.NetMonthlyUSD != -in.MonthlyDeploymentCostUSD {
		t.Errorf("NetMonthlyUSD = %v, want %v", out.NetMonthlyUSD, -in.MonthlyDeploymentCostUSD)
	}
	if out.PaybackMonths.IsDefined() {
		t.Errorf("expected undefined payback for negative net, got %v", out.PaybackMonths)
	}
	if roi, ok := out.ROIMonthly.Get(); !ok || roi != -1 {
		t.Errorf("ROIMonthly = %v (defined=%v), want -1", roi, ok)
	}
}

func TestCompute_BreakEvenHasNoPayback(t *testing.T) {
	in := baseline()
	in.MonthlyDeploymentCostUSD = 0
	in.ReportsPerMonth = 0

	out, err := Compute(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NetMonthlyUSD != 0 {
		t.Fatalf("NetMonthlyUSD = %v, want 0", out.NetMonthlyUSD)
	}
	if out.PaybackMonths.IsDefined() {
		t.Errorf("expected undefined payback when net is zero, got %v", out.PaybackMonths)
	}
	if out.ROIMonthly.IsDefined() {
		t.Errorf("expected undefined ROI when cost is zero, got %v", out.ROIMonthly)
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Inputs)
		field  string
		reason Reason
	}{
		{"RejectionRateAbove100", func(in *Inputs) { in.CurrentRejectionRatePct = 150 }, FieldCurrentRejectionRatePct, ReasonOutOfRange},
		{"RejectionRateNegative", func(in *Inputs) { in.CurrentRejectionRatePct = -1 }, FieldCurrentRejectionRatePct, ReasonOutOfRange},
		{"ReductionAbove100", func(in *Inputs) { in.ExpectedRejectionReductionPct = 100.5 }, FieldExpectedRejectionReductionPct, ReasonOutOfRange},
		{"UnknownRiskLevel", func(in *Inputs) { in.RiskLevel = "Extreme" }, FieldRiskLevel, ReasonUnrecognized},
		{"EmptyRiskLevel", func(in *Inputs) { in.RiskLevel = "" }, FieldRiskLevel, ReasonUnrecognized},
		{"NegativeReports", func(in *Inputs) { in.ReportsPerMonth = -5 }, FieldReportsPerMonth, ReasonNegative},
		{"NegativeDelay", func(in *Inputs) { in.AverageDelayDays = -2 }, FieldAverageDelayDays, ReasonNegative},
		{"NegativeHourlyCost", func(in *Inputs) { in.ClinicianHourlyCostUSD = -75 }, FieldClinicianHourlyCostUSD, ReasonNegative},
		{"NegativeMinutesNow", func(in *Inputs) { in.MinutesPerReportNow = -1 }, FieldMinutesPerReportNow, ReasonNegative},
		{"NegativeMinutesTarget", func(in *Inputs) { in.MinutesPerReportTarget = -1 }, FieldMinutesPerReportTarget, ReasonNegative},
		{"NegativeApprovalValue", func(in *Inputs) { in.ValuePerOnTimeApprovalUSD = -120 }, FieldValuePerOnTimeApprovalUSD, ReasonNegative},
		{"NegativeDeploymentCost", func(in *Inputs) { in.MonthlyDeploymentCostUSD = -600 }, FieldMonthlyDeploymentCostUSD, ReasonNegative},
		{"NaNHourlyCost", func(in *Inputs) { in.ClinicianHourlyCostUSD = math.NaN() }, FieldClinicianHourlyCostUSD, ReasonNotFinite},
		{"InfDeploymentCost", func(in *Inputs) { in.MonthlyDeploymentCostUSD = math.Inf(1) }, FieldMonthlyDeploymentCostUSD, ReasonNotFinite},
		{"NaNPercentage", func(in *Inputs) { in.CurrentRejectionRatePct = math.NaN() }, FieldCurrentRejectionRatePct, ReasonNotFinite},
		{"LaborOverflows", func(in *Inputs) { in.ClinicianHourlyCostUSD = 1e308 }, FieldClinicianHourlyCostUSD, ReasonOverflow},
		{"ApprovalBenefitOverflows", func(in *Inputs) { in.ValuePerOnTimeApprovalUSD = 1e308 }, FieldValuePerOnTimeApprovalUSD, ReasonOverflow},
		{"GrossOverflows", func(in *Inputs) {
			in.ClinicianHourlyCostUSD = 1.2e307
			in.ValuePerOnTimeApprovalUSD = 7e307
		}, FieldClinicianHourlyCostUSD, ReasonOverflow},
		{"ROIOverflows", func(in *Inputs) { in.MonthlyDeploymentCostUSD = 1e-310 }, FieldMonthlyDeploymentCostUSD, ReasonOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseline()
			tt.mutate(&in)

			_, err := Compute(in)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidInputError, got %T", err)
			}
			if invalid.Field != tt.field {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.field)
			}
			if invalid.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", invalid.Reason, tt.reason)
			}
		})
	}
}

func TestCompute_PercentageBoundsAreInclusive(t *testing.T) {
	for _, pct := range []float64{0, 100} {
		in := baseline()
		in.CurrentRejectionRatePct = pct
		in.ExpectedRejectionReductionPct = pct
		if _, err := Compute(in); err != nil {
			t.Errorf("pct=%v: unexpected error: %v", pct, err)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	in := baseline()
	first, err := Compute(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compute(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestCompute_NonNegativeBenefits(t *testing.T) {
	grid := []Inputs{
		baseline(),
		{RiskLevel: RiskLow},
		{ReportsPerMonth: 1000, CurrentRejectionRatePct: 100, ClinicianHourlyCostUSD: 0.01, MinutesPerReportNow: 1, MinutesPerReportTarget: 90, ExpectedRejectionReductionPct: 100, ValuePerOnTimeApprovalUSD: 1, MonthlyDeploymentCostUSD: 1e6, RiskLevel: RiskHigh},
		{ReportsPerMonth: 7, CurrentRejectionRatePct: 33.3, ClinicianHourlyCostUSD: 210, MinutesPerReportNow: 120, ExpectedRejectionReductionPct: 12.5, ValuePerOnTimeApprovalUSD: 980, RiskLevel: RiskMedium},
	}

	for i, in := range grid {
		out, err := Compute(in)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if out.MinutesSaved < 0 {
			t.Errorf("case %d: MinutesSaved negative: %d", i, out.MinutesSaved)
		}
		for _, v := range []float64{out.HoursSavedPerMonth, out.LaborSavingsUSD, out.AvoidedRejectionsPerMonth, out.RiskAdjustedBenefitUSD, out.GrossBenefitsUSD} {
			if v < 0 {
				t.Errorf("case %d: negative benefit in %+v", i, out)
			}
		}
		if !approx(out.NetMonthlyUSD, out.GrossBenefitsUSD-in.MonthlyDeploymentCostUSD) {
			t.Errorf("case %d: net %v does not equal gross minus cost", i, out.NetMonthlyUSD)
		}
	}
}

func TestCompute_RiskLevelScalesApprovalBenefit(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  float64
	}{
		{RiskLow, 360},
		{RiskMedium, 252},
		{RiskHigh, 180},
		{"high", 180},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			in := baseline()
			in.RiskLevel = tt.level
			out, err := Compute(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(out.RiskAdjustedBenefitUSD, tt.want) {
				t.Errorf("RiskAdjustedBenefitUSD = %v, want %v", out.RiskAdjustedBenefitUSD, tt.want)
			}
		})
	}
}

func TestInvalidInputError_Message(t *testing.T) {
	err := &InvalidInputError{Field: FieldRiskLevel, Reason: ReasonUnrecognized, Value: "Extreme"}
	want := "invalid input riskLevel: unrecognized (got Extreme)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
