package cmd

import (
	"github.com/spf13/cobra"

	"saltlens/internal/analysis"
	"saltlens/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the strategy report and machine-readable summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		res, err := loadAndClean()
		if err != nil {
			return err
		}
		rep, err := analysis.Analyze(res.Records)
		if err != nil {
			return err
		}
		paths, err := writeReports(rep, res, report.NewMeta())
		if err != nil {
			return err
		}
		for _, p := range paths {
			say("✓ Wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
