// Package impact estimates the monthly financial impact of automating report preparation:
// labor saved on each report, rejections avoided, and the resulting ROI and payback period.
package impact

import "math"

// Compute validates the inputs and derives the monthly outputs.
// It is a pure function: equal inputs always produce equal outputs.
func Compute(in Inputs) (Outputs, error) {
	if err := in.Validate(); err != nil {
		return Outputs{}, err
	}
	factor, err := RiskFactor(in.RiskLevel)
	if err != nil {
		return Outputs{}, err
	}

	// A target slower than today yields no savings rather than a negative figure.
	minutesSaved := in.MinutesPerReportNow - in.MinutesPerReportTarget
	if minutesSaved < 0 {
		minutesSaved = 0
	}

	reports := float64(in.ReportsPerMonth)
	hoursSaved := reports * float64(minutesSaved) / 60.0
	labor := hoursSaved * in.ClinicianHourlyCostUSD

	avoided := reports * (in.CurrentRejectionRatePct / 100.0) * (in.ExpectedRejectionReductionPct / 100.0)
	riskAdjusted := avoided * in.ValuePerOnTimeApprovalUSD * factor

	gross := labor + riskAdjusted
	cost := in.MonthlyDeploymentCostUSD
	net := gross - cost

	if err := finiteOutputs(in, labor, riskAdjusted, gross); err != nil {
		return Outputs{}, err
	}

	out := Outputs{
		MinutesSaved:              minutesSaved,
		HoursSavedPerMonth:        hoursSaved,
		LaborSavingsUSD:           labor,
		AvoidedRejectionsPerMonth: avoided,
		RiskAdjustedBenefitUSD:    riskAdjusted,
		GrossBenefitsUSD:          gross,
		NetMonthlyUSD:             net,
		ROIMonthly:                Undefined(),
		PaybackMonths:             Undefined(),
	}
	if cost != 0 {
		roi := (gross - cost) / cost
		if !isFinite(roi) {
			return Outputs{}, overflow(FieldMonthlyDeploymentCostUSD, cost)
		}
		out.ROIMonthly = Defined(roi)
	}
	if net > 0 {
		payback := cost / net
		if !isFinite(payback) {
			return Outputs{}, overflow(FieldMonthlyDeploymentCostUSD, cost)
		}
		out.PaybackMonths = Defined(payback)
	}
	return out, nil
}

// finiteOutputs attributes an infinite intermediate to the input that produced it.
// Hours and avoided rejections are bounded by integer inputs and percentages.
func finiteOutputs(in Inputs, labor, riskAdjusted, gross float64) error {
	if !isFinite(labor) {
		return overflow(FieldClinicianHourlyCostUSD, in.ClinicianHourlyCostUSD)
	}
	if !isFinite(riskAdjusted) {
		return overflow(FieldValuePerOnTimeApprovalUSD, in.ValuePerOnTimeApprovalUSD)
	}
	if !isFinite(gross) {
		if labor >= riskAdjusted {
			return overflow(FieldClinicianHourlyCostUSD, in.ClinicianHourlyCostUSD)
		}
		return overflow(FieldValuePerOnTimeApprovalUSD, in.ValuePerOnTimeApprovalUSD)
	}
	return nil
}

func overflow(field string, v float64) error {
	return &InvalidInputError{Field: field, Reason: ReasonOverflow, Value: v}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks every field against its constraint and reports the first violation.
func (in Inputs) Validate() error {
	if err := nonNegativeInt(FieldReportsPerMonth, in.ReportsPerMonth); err != nil {
		return err
	}
	if err := percentage(FieldCurrentRejectionRatePct, in.CurrentRejectionRatePct); err != nil {
		return err
	}
	if err := nonNegative(FieldAverageDelayDays, in.AverageDelayDays); err != nil {
		return err
	}
	if err := nonNegative(FieldClinicianHourlyCostUSD, in.ClinicianHourlyCostUSD); err != nil {
		return err
	}
	if err := nonNegativeInt(FieldMinutesPerReportNow, in.MinutesPerReportNow); err != nil {
		return err
	}
	if err := nonNegativeInt(FieldMinutesPerReportTarget, in.MinutesPerReportTarget); err != nil {
		return err
	}
	if err := percentage(FieldExpectedRejectionReductionPct, in.ExpectedRejectionReductionPct); err != nil {
		return err
	}
	if err := nonNegative(FieldValuePerOnTimeApprovalUSD, in.ValuePerOnTimeApprovalUSD); err != nil {
		return err
	}
	if err := nonNegative(FieldMonthlyDeploymentCostUSD, in.MonthlyDeploymentCostUSD); err != nil {
		return err
	}
	if _, err := ParseRiskLevel(string(in.RiskLevel)); err != nil {
		return err
	}
	return nil
}

func nonNegativeInt(field string, v int) error {
	if v < 0 {
		return &InvalidInputError{Field: field, Reason: ReasonNegative, Value: v}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Reason: ReasonNotFinite, Value: v}
	}
	if v < 0 {
		return &InvalidInputError{Field: field, Reason: ReasonNegative, Value: v}
	}
	return nil
}

func percentage(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Reason: ReasonNotFinite, Value: v}
	}
	if v < 0 || v > 100 {
		return &InvalidInputError{Field: field, Reason: ReasonOutOfRange, Value: v}
	}
	return nil
}
