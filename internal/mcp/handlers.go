package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"impact-mcp/internal/casefile"
	"impact-mcp/internal/impact"
	"impact-mcp/internal/report"
	"impact-mcp/internal/scenario"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleEstimateImpact(ctx context.Context, req *sdkmcp.CallToolRequest, args EstimateArgs) (*sdkmcp.CallToolResult, any, error) {
	in := s.toInputs(args)
	est, err := report.Build(args.Title, in)
	if err != nil {
		return s.toolError("estimate_impact", err), nil, nil
	}

	log.Info().
		Str("tool", "estimate_impact").
		Str("estimate", est.ID).
		Str("riskLevel", string(in.RiskLevel)).
		Float64("netMonthlyUsd", est.Outputs.NetMonthlyUSD).
		Msg("Estimate computed")

	var charts []string
	if s.cfg != nil && s.cfg.EnableMermaidCharts {
		charts = estimateCharts(est)
	}
	return s.respond("estimate_impact", WrapResponse(est, report.Notes(est.Inputs, est.Outputs)), charts...), nil, nil
}

func (s *Server) handleCompareScenarios(ctx context.Context, req *sdkmcp.CallToolRequest, args CompareArgs) (*sdkmcp.CallToolResult, any, error) {
	if len(args.Scenarios) == 0 {
		return s.toolError("compare_scenarios", errors.New("at least one scenario is required")), nil, nil
	}

	seen := make(map[string]bool)
	scenarios := make([]scenario.Scenario, 0, len(args.Scenarios))
	for i, sa := range args.Scenarios {
		name := strings.TrimSpace(sa.Name)
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}
		if seen[name] {
			return s.toolError("compare_scenarios", fmt.Errorf("duplicate scenario name: %s", name)), nil, nil
		}
		seen[name] = true

		scenarios = append(scenarios, scenario.Scenario{Name: name, Inputs: s.toInputs(sa.Inputs)})
	}

	limit := 0
	if s.cfg != nil {
		limit = s.cfg.ScenarioConcurrency
	}
	results, err := scenario.Evaluate(ctx, scenarios, limit)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]ScenarioResult, 0, len(results))
	var warnings []string
	for _, r := range results {
		row := ScenarioResult{Name: r.Name}
		if r.Err != nil {
			row.Error = r.Err.Error()
			warnings = append(warnings, fmt.Sprintf("Scenario %q was rejected: %v", r.Name, r.Err))
		} else {
			out := r.Outputs
			row.Outputs = &out
		}
		rows = append(rows, row)
	}

	log.Info().Str("tool", "compare_scenarios").Int("scenarios", len(rows)).Int("rejected", len(warnings)).Msg("Scenarios evaluated")

	var charts []string
	if s.cfg != nil && s.cfg.EnableMermaidCharts {
		if cmp := report.ComparisonMarkdown(scenario.Columns(results), true); cmp != "" {
			charts = append(charts, cmp)
		}
	}
	return s.respond("compare_scenarios", WrapResponse(rows, warnings), charts...), nil, nil
}

func (s *Server) handleDraftCaseReport(ctx context.Context, req *sdkmcp.CallToolRequest, args DraftArgs) (*sdkmcp.CallToolResult, any, error) {
	packet, err := casefile.Prepare(casefile.CaseDetails(args))
	if err != nil {
		return s.toolError("draft_case_report", err), nil, nil
	}
	log.Info().Str("tool", "draft_case_report").Str("reportDate", args.ReportDate).Msg("Case paperwork drafted")

	warnings := []string{"HUMAN REVIEW REQUIRED: the clinician must verify and complete the draft before submission."}
	return s.respond("draft_case_report", WrapResponse(packet, warnings)), nil, nil
}

func (s *Server) handleListRiskLevels(ctx context.Context, req *sdkmcp.CallToolRequest, args RiskLevelsArgs) (*sdkmcp.CallToolResult, any, error) {
	var levels []RiskLevelInfo
	for _, level := range impact.RiskLevels() {
		factor, err := impact.RiskFactor(level)
		if err != nil {
			return nil, nil, err
		}
		levels = append(levels, RiskLevelInfo{
			Level:     level,
			Factor:    factor,
			IsDefault: level == s.defaultRiskLevel(),
		})
	}
	return s.respond("list_risk_levels", WrapResponse(levels, nil)), nil, nil
}

// toInputs converts tool arguments, filling the configured default risk level when omitted.
// An unrecognized level is passed through as given so the estimator rejects it with the others.
func (s *Server) toInputs(args EstimateArgs) impact.Inputs {
	level := s.defaultRiskLevel()
	if raw := strings.TrimSpace(args.RiskLevel); raw != "" {
		level = impact.RiskLevel(raw)
		if parsed, err := impact.ParseRiskLevel(raw); err == nil {
			level = parsed
		}
	}
	return impact.Inputs{
		ReportsPerMonth:               args.ReportsPerMonth,
		CurrentRejectionRatePct:       args.CurrentRejectionRatePct,
		AverageDelayDays:              args.AverageDelayDays,
		ClinicianHourlyCostUSD:        args.ClinicianHourlyCostUSD,
		MinutesPerReportNow:           args.MinutesPerReportNow,
		MinutesPerReportTarget:        args.MinutesPerReportTarget,
		ExpectedRejectionReductionPct: args.ExpectedRejectionReductionPct,
		ValuePerOnTimeApprovalUSD:     args.ValuePerOnTimeApprovalUSD,
		MonthlyDeploymentCostUSD:      args.MonthlyDeploymentCostUSD,
		RiskLevel:                     level,
	}
}

func (s *Server) defaultRiskLevel() impact.RiskLevel {
	if s.cfg != nil && s.cfg.DefaultRiskLevel != "" {
		return s.cfg.DefaultRiskLevel
	}
	return impact.RiskMedium
}
