package impact

import "fmt"

// Field names reported by InvalidInputError.
const (
	FieldReportsPerMonth               = "reportsPerMonth"
	FieldCurrentRejectionRatePct       = "currentRejectionRatePct"
	FieldAverageDelayDays              = "averageDelayDays"
	FieldClinicianHourlyCostUSD        = "clinicianHourlyCostUsd"
	FieldMinutesPerReportNow           = "minutesPerReportNow"
	FieldMinutesPerReportTarget        = "minutesPerReportTarget"
	FieldExpectedRejectionReductionPct = "expectedRejectionReductionPct"
	FieldValuePerOnTimeApprovalUSD     = "valuePerOnTimeApprovalUsd"
	FieldMonthlyDeploymentCostUSD      = "monthlyDeploymentCostUsd"
	FieldRiskLevel                     = "riskLevel"
)

// Reason classifies why an input was rejected.
// ReasonOverflow marks a finite input that drives a derived figure beyond float64 range.
type Reason string

const (
	ReasonNegative     Reason = "negative"
	ReasonOutOfRange   Reason = "out-of-range"
	ReasonNotFinite    Reason = "not-finite"
	ReasonUnrecognized Reason = "unrecognized"
	ReasonOverflow     Reason = "overflow"
)

// InvalidInputError names the input that violated its constraint.
// The caller is expected to correct the value and call Compute again.
type InvalidInputError struct {
	Field  string
	Reason Reason
	Value  interface{}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s (got %v)", e.Field, e.Reason, e.Value)
}
