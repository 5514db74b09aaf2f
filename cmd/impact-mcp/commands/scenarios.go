package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"impact-mcp/internal/config"
	"impact-mcp/internal/report"
	"impact-mcp/internal/scenario"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	scenariosFormat string
	scenariosXLSX   string
	scenariosCharts bool
	scenariosStrict bool
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios <file.yaml>",
	Short: "Evaluate and compare the named scenarios in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := scenario.Load(args[0])
		if err != nil {
			return err
		}
		scenario.ApplyDefaultRiskLevel(scenarios, cfg.DefaultRiskLevel)

		results, err := scenario.Evaluate(cmd.Context(), scenarios, cfg.ScenarioConcurrency)
		if err != nil {
			return err
		}
		for _, r := range results {
			if r.Err != nil {
				log.Warn().Str("scenario", r.Name).Err(r.Err).Msg("Scenario rejected")
			}
		}
		if scenariosStrict {
			if err := scenario.FirstError(results); err != nil {
				return err
			}
		}

		cols := scenario.Columns(results)
		out, err := renderComparison(results, cols, scenariosFormat, scenariosCharts || cfg.EnableMermaidCharts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		if scenariosXLSX != "" {
			f, err := os.Create(scenariosXLSX)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", scenariosXLSX, err)
			}
			defer f.Close()
			if err := report.WriteComparisonXLSX(f, cols); err != nil {
				return err
			}
			log.Info().Str("path", scenariosXLSX).Int("scenarios", len(cols)).Msg("Comparison workbook written")
		}
		return nil
	},
}

func renderComparison(results []scenario.Result, cols []report.Column, format string, charts bool) (string, error) {
	rows := make([]scenarioRow, 0, len(results))
	for _, r := range results {
		row := scenarioRow{Name: r.Name}
		if r.Err != nil {
			row.Error = r.Err.Error()
		} else {
			row.Outputs = r.Outputs.Map()
		}
		rows = append(rows, row)
	}

	switch format {
	case config.FormatJSON:
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case config.FormatYAML:
		out, err := yaml.Marshal(rows)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case config.FormatMarkdown, config.FormatText, "":
		md := report.ComparisonMarkdown(cols, charts)
		for _, row := range rows {
			if row.Error != "" {
				md += fmt.Sprintf("\n- %s rejected: %s", row.Name, row.Error)
			}
		}
		return md + "\n", nil
	default:
		return "", fmt.Errorf("unknown output format: %s (expected text, markdown, json or yaml)", format)
	}
}

// scenarioRow is the flat export shape: outputs keyed by field name, null when not applicable.
type scenarioRow struct {
	Name    string                 `json:"name" yaml:"name"`
	Outputs map[string]interface{} `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Error   string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

func init() {
	scenariosCmd.Flags().StringVarP(&scenariosFormat, "format", "f", config.FormatMarkdown, "output format: markdown, json or yaml")
	scenariosCmd.Flags().StringVar(&scenariosXLSX, "xlsx", "", "also export the comparison as an .xlsx workbook")
	scenariosCmd.Flags().BoolVar(&scenariosCharts, "charts", false, "include a Mermaid comparison chart")
	scenariosCmd.Flags().BoolVar(&scenariosStrict, "strict", false, "fail when any scenario is rejected")
	rootCmd.AddCommand(scenariosCmd)
}
