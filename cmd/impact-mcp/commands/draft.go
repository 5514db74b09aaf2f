package commands

import (
	"fmt"
	"os"
	"time"

	"impact-mcp/internal/casefile"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	draftDetails  casefile.CaseDetails
	draftEvoFile  string
	draftOutPath  string
	draftRawPrint bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Prepare a requirements checklist and report skeleton for a case",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := draftDetails
		if d.ReportDate == "" {
			d.ReportDate = time.Now().Format("2006-01-02")
		}
		if draftEvoFile != "" {
			data, err := os.ReadFile(draftEvoFile)
			if err != nil {
				return fmt.Errorf("failed to read evolution file: %w", err)
			}
			d.Evolution = string(data)
		}

		packet, err := casefile.Prepare(d)
		if err != nil {
			return err
		}
		md := packet.Markdown()

		if draftOutPath != "" {
			return writeOutput(cmd.OutOrStdout(), draftOutPath, md)
		}

		if !draftRawPrint && isatty.IsTerminal(os.Stdout.Fd()) {
			if rendered, err := renderMarkdown(md); err == nil {
				md = rendered
			} else {
				log.Debug().Err(err).Msg("Falling back to raw markdown")
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

func init() {
	f := draftCmd.Flags()
	f.StringVar(&draftDetails.Insurer, "insurer", "", "health insurance company (e.g. SaludPlus)")
	f.StringVar(&draftDetails.Trigger, "trigger", "", "medical act that triggers the benefit")
	f.StringVar(&draftDetails.Diagnosis, "diagnosis", "", "primary diagnosis or reason")
	f.StringVar(&draftDetails.ReportDate, "date", "", "report date YYYY-MM-DD (default today)")
	f.StringVar(&draftDetails.Clinician, "clinician", "", "responsible clinician")
	f.StringVar(&draftDetails.CaseID, "case-id", "", "case or folio identifier")
	f.StringVar(&draftDetails.Evolution, "evolution", "", "clinical changes since the last report, one dated change per line")
	f.StringVar(&draftEvoFile, "evolution-file", "", "read the evolution text from a file")
	f.StringVarP(&draftOutPath, "out", "o", "", "write the markdown to this file")
	f.BoolVar(&draftRawPrint, "raw", false, "print raw markdown even on a terminal")
	rootCmd.AddCommand(draftCmd)
}
