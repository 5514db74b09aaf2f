package mcp

import (
	"encoding/json"
	"fmt"

	"impact-mcp/internal/impact"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// EstimateArgs are the arguments of estimate_impact.
type EstimateArgs struct {
	Title                         string  `json:"title,omitempty" jsonschema:"Optional label for the estimate (e.g. the clinic or pilot name)"`
	ReportsPerMonth               int     `json:"reports_per_month" jsonschema:"Benefit-activation reports prepared per month (>= 0)"`
	CurrentRejectionRatePct       float64 `json:"current_rejection_rate_pct" jsonschema:"Share of reports currently rejected by the insurer, in percent (0-100)"`
	AverageDelayDays              float64 `json:"average_delay_days,omitempty" jsonschema:"Average delay of a report in days (>= 0). Informational only"`
	ClinicianHourlyCostUSD        float64 `json:"clinician_hourly_cost_usd" jsonschema:"Fully loaded clinician cost per hour in USD (>= 0)"`
	MinutesPerReportNow           int     `json:"minutes_per_report_now" jsonschema:"Minutes a clinician spends per report today (>= 0)"`
	MinutesPerReportTarget        int     `json:"minutes_per_report_target" jsonschema:"Target minutes per report with assistance (>= 0). A target above today counts as zero savings"`
	ExpectedRejectionReductionPct float64 `json:"expected_rejection_reduction_pct" jsonschema:"Expected relative reduction of rejections, in percent (0-100)"`
	ValuePerOnTimeApprovalUSD     float64 `json:"value_per_on_time_approval_usd" jsonschema:"Value in USD of one approval that is no longer rejected (>= 0)"`
	MonthlyDeploymentCostUSD      float64 `json:"monthly_deployment_cost_usd" jsonschema:"Monthly cost of running the solution in USD (>= 0)"`
	RiskLevel                     string  `json:"risk_level,omitempty" jsonschema:"Conservatism applied to approval benefits: Low (x1.0), Medium (x0.7) or High (x0.5)"`
}

// ScenarioArgs is one named entry of compare_scenarios.
type ScenarioArgs struct {
	Name   string       `json:"name" jsonschema:"Unique scenario name"`
	Inputs EstimateArgs `json:"inputs" jsonschema:"Estimator inputs for this scenario"`
}

// CompareArgs are the arguments of compare_scenarios.
type CompareArgs struct {
	Scenarios []ScenarioArgs `json:"scenarios" jsonschema:"Two or more named scenarios to evaluate side by side"`
}

// DraftArgs are the arguments of draft_case_report.
type DraftArgs struct {
	Insurer    string `json:"insurer,omitempty" jsonschema:"Health insurance company receiving the report"`
	Trigger    string `json:"trigger,omitempty" jsonschema:"Medical act that triggers the benefit (e.g. outpatient surgery)"`
	Diagnosis  string `json:"diagnosis,omitempty" jsonschema:"Primary diagnosis or reason"`
	ReportDate string `json:"report_date" jsonschema:"Report date in YYYY-MM-DD format"`
	Clinician  string `json:"clinician,omitempty" jsonschema:"Responsible clinician"`
	CaseID     string `json:"case_id,omitempty" jsonschema:"Case or folio identifier"`
	Evolution  string `json:"evolution,omitempty" jsonschema:"Clinical changes since the last report, one dated change per line"`
}

// RiskLevelsArgs is empty; list_risk_levels takes no arguments.
type RiskLevelsArgs struct{}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name: "estimate_impact",
		Description: "Estimate the monthly financial impact of assisted report preparation: labor saved, rejections avoided, ROI and payback.\n\n" +
			"Returns every derived figure together with the inputs used. 'roi_monthly' and 'payback_months' may be null: " +
			"null means NOT APPLICABLE (zero deployment cost, or benefits that never exceed cost) and MUST NOT be reported as zero.\n\n" +
			"STRICT GUARDRAIL: YOU MUST NEVER COMPUTE ROI, PAYBACK OR SAVINGS YOURSELF. If the tool rejects an input, report the named field to the user and ask for a corrected value.",
		InputSchema: s.estimateSchema(),
	}, s.handleEstimateImpact)

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name: "compare_scenarios",
		Description: "Evaluate several named input sets side by side (e.g. pilot vs. full rollout, or Low vs. High risk). \n\n" +
			"Each scenario is computed independently; a rejected scenario is reported with its error and does not affect the others.",
		InputSchema: mustSchema[CompareArgs](),
	}, s.handleCompareScenarios)

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name: "draft_case_report",
		Description: "Prepare the paperwork for a benefit-activation request: a requirements checklist and a report skeleton.\n\n" +
			"The draft is a starting point for the clinician. It MUST be reviewed by a human before it is sent to the insurer.",
		InputSchema: mustSchema[DraftArgs](),
	}, s.handleDraftCaseReport)

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "list_risk_levels",
		Description: "List the accepted risk levels and the fixed multiplier each applies to approval benefits.",
		InputSchema: mustSchema[RiskLevelsArgs](),
	}, s.handleListRiskLevels)
}

// estimateSchema advertises the configured default risk level.
func (s *Server) estimateSchema() *jsonschema.Schema {
	schema := mustSchema[EstimateArgs]()
	if prop, ok := schema.Properties["risk_level"]; ok {
		def, _ := json.Marshal(string(s.defaultRiskLevel()))
		prop.Default = def
		for _, level := range impact.RiskLevels() {
			prop.Examples = append(prop.Examples, string(level))
		}
	}
	return schema
}

func mustSchema[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		log.Fatal().Err(err).Str("type", fmt.Sprintf("%T", *new(T))).Msg("Failed to infer tool schema")
	}
	return schema
}
