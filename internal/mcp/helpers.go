package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"impact-mcp/internal/impact"
	"impact-mcp/internal/report"
	"impact-mcp/internal/visuals"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ResponseEnvelope is the JSON document returned as the first text content of every tool result.
type ResponseEnvelope struct {
	Data     interface{} `json:"data"`
	Warnings []string    `json:"warnings,omitempty"`
}

// ToolError is returned as the text of a failed tool call.
type ToolError struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ScenarioResult is one row of compare_scenarios.
type ScenarioResult struct {
	Name    string          `json:"name"`
	Outputs *impact.Outputs `json:"outputs,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RiskLevelInfo describes one accepted risk level.
type RiskLevelInfo struct {
	Level     impact.RiskLevel `json:"level"`
	Factor    float64          `json:"factor"`
	IsDefault bool             `json:"is_default,omitempty"`
}

// WrapResponse attaches warnings to a tool payload.
func WrapResponse(data interface{}, warnings []string) ResponseEnvelope {
	return ResponseEnvelope{Data: data, Warnings: warnings}
}

func (s *Server) formatResult(data interface{}) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(out), nil
}

// respond encodes the envelope; an encoding failure is reported as a tool error, never as empty text.
func (s *Server) respond(tool string, env ResponseEnvelope, extra ...string) *sdkmcp.CallToolResult {
	text, err := s.formatResult(env)
	if err != nil {
		return s.toolError(tool, err)
	}
	content := []sdkmcp.Content{&sdkmcp.TextContent{Text: text}}
	for _, chart := range extra {
		content = append(content, &sdkmcp.TextContent{Text: chart})
	}
	return &sdkmcp.CallToolResult{Content: content}
}

// toolError reports a recoverable failure to the client. Invalid inputs name the offending field.
func (s *Server) toolError(tool string, err error) *sdkmcp.CallToolResult {
	te := ToolError{Error: err.Error()}
	var invalid *impact.InvalidInputError
	if errors.As(err, &invalid) {
		te.Field = invalid.Field
		te.Reason = string(invalid.Reason)
	}
	log.Warn().Str("tool", tool).Err(err).Msg("Tool call rejected")

	text, encErr := s.formatResult(te)
	if encErr != nil {
		text = te.Error
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

func estimateCharts(est *report.Estimate) []string {
	var charts []string
	if chart := visuals.GenerateBenefitChart(est.Outputs, est.Inputs.MonthlyDeploymentCostUSD); chart != "" {
		charts = append(charts, chart)
	}
	if pie := visuals.GenerateBenefitPie(est.Outputs); pie != "" {
		charts = append(charts, pie)
	}
	return charts
}
