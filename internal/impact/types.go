package impact

// Inputs is the full set of business figures an estimate is computed from.
// Callers collect the whole record and pass it to Compute; nothing is kept between calls.
type Inputs struct {
	ReportsPerMonth               int       `json:"reports_per_month" yaml:"reports_per_month"`
	CurrentRejectionRatePct       float64   `json:"current_rejection_rate_pct" yaml:"current_rejection_rate_pct"`
	AverageDelayDays              float64   `json:"average_delay_days" yaml:"average_delay_days"` // informational, not used in any output
	ClinicianHourlyCostUSD        float64   `json:"clinician_hourly_cost_usd" yaml:"clinician_hourly_cost_usd"`
	MinutesPerReportNow           int       `json:"minutes_per_report_now" yaml:"minutes_per_report_now"`
	MinutesPerReportTarget        int       `json:"minutes_per_report_target" yaml:"minutes_per_report_target"`
	ExpectedRejectionReductionPct float64   `json:"expected_rejection_reduction_pct" yaml:"expected_rejection_reduction_pct"`
	ValuePerOnTimeApprovalUSD     float64   `json:"value_per_on_time_approval_usd" yaml:"value_per_on_time_approval_usd"`
	MonthlyDeploymentCostUSD      float64   `json:"monthly_deployment_cost_usd" yaml:"monthly_deployment_cost_usd"`
	RiskLevel                     RiskLevel `json:"risk_level" yaml:"risk_level"`
}

// Outputs holds the derived monthly figures for one Inputs record.
type Outputs struct {
	MinutesSaved              int     `json:"minutes_saved" yaml:"minutes_saved"`
	HoursSavedPerMonth        float64 `json:"hours_saved_per_month" yaml:"hours_saved_per_month"`
	LaborSavingsUSD           float64 `json:"labor_savings_usd" yaml:"labor_savings_usd"`
	AvoidedRejectionsPerMonth float64 `json:"avoided_rejections_per_month" yaml:"avoided_rejections_per_month"`
	RiskAdjustedBenefitUSD    float64 `json:"risk_adjusted_benefit_usd" yaml:"risk_adjusted_benefit_usd"`
	GrossBenefitsUSD          float64 `json:"gross_benefits_usd" yaml:"gross_benefits_usd"`
	NetMonthlyUSD             float64 `json:"net_monthly_usd" yaml:"net_monthly_usd"`
	ROIMonthly                Value   `json:"roi_monthly" yaml:"roi_monthly"`       // undefined when deployment cost is zero
	PaybackMonths             Value   `json:"payback_months" yaml:"payback_months"` // undefined unless net is positive
}

// Field is a single named output in flat form.
type Field struct {
	Key   string
	Label string
	Unit  string
	Value Value
}

// Fields flattens the outputs into an ordered key/value list for export.
func (o Outputs) Fields() []Field {
	return []Field{
		{Key: "minutes_saved", Label: "Minutes saved per report", Unit: "min", Value: Defined(float64(o.MinutesSaved))},
		{Key: "hours_saved_per_month", Label: "Hours saved per month", Unit: "h", Value: Defined(o.HoursSavedPerMonth)},
		{Key: "labor_savings_usd", Label: "Labor savings", Unit: "USD", Value: Defined(o.LaborSavingsUSD)},
		{Key: "avoided_rejections_per_month", Label: "Avoided rejections per month", Unit: "reports", Value: Defined(o.AvoidedRejectionsPerMonth)},
		{Key: "risk_adjusted_benefit_usd", Label: "Risk-adjusted approval benefit", Unit: "USD", Value: Defined(o.RiskAdjustedBenefitUSD)},
		{Key: "gross_benefits_usd", Label: "Gross monthly benefits", Unit: "USD", Value: Defined(o.GrossBenefitsUSD)},
		{Key: "net_monthly_usd", Label: "Net monthly result", Unit: "USD", Value: Defined(o.NetMonthlyUSD)},
		{Key: "roi_monthly", Label: "Monthly ROI", Unit: "ratio", Value: o.ROIMonthly},
		{Key: "payback_months", Label: "Payback period", Unit: "months", Value: o.PaybackMonths},
	}
}

// Map returns the outputs as a key/value map. Undefined values map to nil.
func (o Outputs) Map() map[string]interface{} {
	m := make(map[string]interface{})
	for _, f := range o.Fields() {
		if v, ok := f.Value.Get(); ok {
			m[f.Key] = v
		} else {
			m[f.Key] = nil
		}
	}
	return m
}
