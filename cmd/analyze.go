package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"saltlens/internal/analysis"
	"saltlens/internal/exporter"
	"saltlens/internal/report"
	"saltlens/internal/utils"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Clean the data and print the analysis",
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

		if analyzeJSON {
			sum := exporter.RunSummary{Meta: report.NewMeta(), Cleaning: res.Summary, Analysis: rep}
			b, err := utils.PrettyJSON(sum)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Print(report.Build(rep, res.Summary, report.NewMeta()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the machine-readable summary instead of the report text")
}
