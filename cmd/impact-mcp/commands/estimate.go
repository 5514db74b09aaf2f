package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"impact-mcp/internal/config"
	"impact-mcp/internal/impact"
	"impact-mcp/internal/report"

	"github.com/mattn/go-isatty"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type estimateOptions struct {
	inputs      impact.Inputs
	riskLevel   string
	title       string
	format      string
	outPath     string
	xlsxPath    string
	charts      bool
	open        bool
	interactive bool
}

var estimateOpts estimateOptions

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute the monthly impact and ROI for one set of inputs",
	Example: `  impact-mcp estimate --reports 40 --rejection-rate 15 --hourly-cost 75 \
    --minutes-now 45 --minutes-target 25 --rejection-reduction 50 \
    --approval-value 120 --deployment-cost 600 --risk Medium`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEstimate(cmd, &estimateOpts)
	},
}

func init() {
	f := estimateCmd.Flags()
	in := &estimateOpts.inputs
	f.IntVar(&in.ReportsPerMonth, "reports", 0, "reports prepared per month")
	f.Float64Var(&in.CurrentRejectionRatePct, "rejection-rate", 0, "current rejection rate in percent (0-100)")
	f.Float64Var(&in.AverageDelayDays, "delay-days", 0, "average report delay in days (informational)")
	f.Float64Var(&in.ClinicianHourlyCostUSD, "hourly-cost", 0, "clinician hourly cost in USD")
	f.IntVar(&in.MinutesPerReportNow, "minutes-now", 0, "minutes per report today")
	f.IntVar(&in.MinutesPerReportTarget, "minutes-target", 0, "target minutes per report")
	f.Float64Var(&in.ExpectedRejectionReductionPct, "rejection-reduction", 0, "expected rejection reduction in percent (0-100)")
	f.Float64Var(&in.ValuePerOnTimeApprovalUSD, "approval-value", 0, "value of one on-time approval in USD")
	f.Float64Var(&in.MonthlyDeploymentCostUSD, "deployment-cost", 0, "monthly deployment cost in USD")
	f.StringVar(&estimateOpts.riskLevel, "risk", "", "risk level: Low, Medium or High (default from DEFAULT_RISK_LEVEL)")
	f.StringVar(&estimateOpts.title, "title", "", "title for the report")
	f.StringVarP(&estimateOpts.format, "format", "f", "", "output format: text, markdown, json or yaml (default from DEFAULT_OUTPUT_FORMAT)")
	f.StringVarP(&estimateOpts.outPath, "out", "o", "", "write the report to this file instead of stdout")
	f.StringVar(&estimateOpts.xlsxPath, "xlsx", "", "also export the estimate as an .xlsx workbook")
	f.BoolVar(&estimateOpts.charts, "charts", false, "include Mermaid charts in markdown output")
	f.BoolVar(&estimateOpts.open, "open", false, "save a markdown report under the reports directory and open it")
	f.BoolVarP(&estimateOpts.interactive, "interactive", "i", false, "prompt for the inputs with a form")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, opts *estimateOptions) error {
	in := opts.inputs

	if opts.interactive {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("--interactive requires a terminal")
		}
		if err := promptInputs(&in, cfg.DefaultRiskLevel); err != nil {
			return err
		}
	} else {
		level, err := resolveRiskLevel(opts.riskLevel, cfg.DefaultRiskLevel)
		if err != nil {
			return err
		}
		in.RiskLevel = level
	}

	est, err := report.Build(opts.title, in)
	if err != nil {
		return err
	}
	log.Debug().Str("estimate", est.ID).Float64("netMonthlyUsd", est.Outputs.NetMonthlyUSD).Msg("Estimate computed")

	format := opts.format
	if format == "" {
		format = cfg.DefaultFormat
	}
	rendered, err := renderEstimate(est, format, opts.charts || cfg.EnableMermaidCharts)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.outPath, rendered); err != nil {
		return err
	}

	if opts.xlsxPath != "" {
		if err := saveXLSX(est, opts.xlsxPath); err != nil {
			return err
		}
		log.Info().Str("path", opts.xlsxPath).Msg("Workbook written")
	}

	if opts.open {
		path, err := saveForBrowser(est, cfg)
		if err != nil {
			return err
		}
		if err := browser.OpenFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Could not open report")
		}
	}
	return nil
}

func resolveRiskLevel(flag string, fallback impact.RiskLevel) (impact.RiskLevel, error) {
	if flag == "" {
		return fallback, nil
	}
	return impact.ParseRiskLevel(flag)
}

func renderEstimate(est *report.Estimate, format string, charts bool) (string, error) {
	switch format {
	case config.FormatText:
		return est.Terminal() + "\n", nil
	case config.FormatMarkdown:
		return est.Markdown(charts), nil
	case config.FormatJSON:
		out, err := est.JSON()
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case config.FormatYAML:
		out, err := est.YAML()
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown output format: %s (expected text, markdown, json or yaml)", format)
	}
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("Report written")
	return nil
}

func saveXLSX(est *report.Estimate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return est.WriteXLSX(f)
}

func saveForBrowser(est *report.Estimate, cfg *config.AppConfig) (string, error) {
	if err := cfg.EnsureReportsDir(); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	path := filepath.Join(cfg.ReportsDir, fmt.Sprintf("estimate-%s.md", est.ID))
	if err := os.WriteFile(path, []byte(est.Markdown(true)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
