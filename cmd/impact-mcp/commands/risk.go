package commands

import (
	"fmt"

	"impact-mcp/internal/impact"

	"github.com/spf13/cobra"
)

var riskLevelsCmd = &cobra.Command{
	Use:   "risk-levels",
	Short: "List the accepted risk levels and their benefit multipliers",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, level := range impact.RiskLevels() {
			factor, err := impact.RiskFactor(level)
			if err != nil {
				return err
			}
			marker := ""
			if level == cfg.DefaultRiskLevel {
				marker = " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s x%.1f%s\n", level, factor, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(riskLevelsCmd)
}
