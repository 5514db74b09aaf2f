package commands

import (
	"context"
	"os/signal"
	"syscall"

	"impact-mcp/internal/config"
	"impact-mcp/internal/logging"
	"impact-mcp/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "impact-mcp",
	Short: "Impact-MCP estimates the financial impact of assisted health report preparation",
	Long: `An MCP Server and CLI that estimates the monthly impact (labor savings, avoided rejections,
ROI and payback) of assisted preparation of benefit-activation reports, and drafts the
paperwork for a case. Without a subcommand it serves MCP over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("Impact-MCP starting")
		return nil
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the estimator as MCP tools over stdio",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", Version).
		Bool("mermaidCharts", cfg.EnableMermaidCharts).
		Str("defaultRiskLevel", string(cfg.DefaultRiskLevel)).
		Msg("Impact-MCP serving")
	server := mcp.NewServer(cfg, Version)
	return server.Start(ctx)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Version = Version
	rootCmd.AddCommand(serveCmd)
}
