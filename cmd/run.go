package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"saltlens/internal/analysis"
	"saltlens/internal/charts"
	"saltlens/internal/cleaning"
	"saltlens/internal/exporter"
	"saltlens/internal/interview"
	"saltlens/internal/report"
	"saltlens/internal/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: load, clean, analyze, charts, reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline()
	},
}

// runPipeline executes every stage and writes all artifacts.
func runPipeline() error {
	if err := ensureConfig(); err != nil {
		return err
	}
	start := time.Now()
	meta := report.NewMeta()
	lg := logger().WithField("run_id", meta.RunID)
	lg.WithField("data_file", cfg.DataFile).Debug("pipeline start")

	say("[1/5] Loading %s\n", cfg.DataFile)
	recs, err := interview.Load(cfg.DataFile)
	if err != nil {
		return err
	}
	say("      %d records\n", len(recs))

	say("[2/5] Cleaning\n")
	res, err := cleaning.Clean(recs)
	if err != nil {
		return err
	}
	say("      recoded %d usage values, filled %d missing scores\n",
		res.Summary.RecodedUsage, res.Summary.FilledScores)

	say("[3/5] Analyzing\n")
	rep, err := analysis.Analyze(res.Records)
	if err != nil {
		return err
	}
	say("      dominant job: %s (%s)\n", rep.JTBD.DominantJob, analysis.FormatPct(rep.JTBD.Concentration))

	say("[4/5] Rendering charts\n")
	wrote := make([]string, 0, 5)
	paths, err := renderCharts(rep)
	if err != nil {
		return err
	}
	wrote = append(wrote, paths...)

	say("[5/5] Writing reports\n")
	paths, err = writeReports(rep, res, meta)
	if err != nil {
		return err
	}
	wrote = append(wrote, paths...)

	cleanPath, err := writeCleanData(res)
	if err != nil {
		return err
	}
	wrote = append(wrote, cleanPath)

	for _, p := range wrote {
		say("✓ Wrote %s\n", p)
	}
	lg.WithFields(logrus.Fields{
		"records":   res.Summary.Records,
		"artifacts": len(wrote),
		"elapsed":   time.Since(start).String(),
	}).Info("pipeline complete")
	say("Done in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// loadAndClean runs the shared front half of every stage command.
func loadAndClean() (cleaning.Result, error) {
	recs, err := interview.Load(cfg.DataFile)
	if err != nil {
		return cleaning.Result{}, err
	}
	return cleaning.Clean(recs)
}

func renderCharts(rep *analysis.Report) ([]string, error) {
	dash := cfg.DashboardPath()
	if err := utils.EnsureDir(filepath.Dir(dash)); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}
	if err := charts.RenderDashboard(rep, dash, chartOptions()); err != nil {
		return nil, err
	}
	journey := cfg.JourneyPath()
	if err := charts.RenderJourney(rep, journey, journeyOptions()); err != nil {
		return nil, err
	}
	return []string{dash, journey}, nil
}

func writeReports(rep *analysis.Report, res cleaning.Result, meta report.Meta) ([]string, error) {
	path := cfg.ReportPath()
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	if err := report.Write(path, rep, res.Summary, meta); err != nil {
		return nil, err
	}
	jsonPath := cfg.SummaryJSONPath()
	sum := exporter.RunSummary{Meta: meta, Cleaning: res.Summary, Analysis: rep}
	if err := exporter.WriteSummaryJSON(jsonPath, sum); err != nil {
		return nil, err
	}
	return []string{path, jsonPath}, nil
}

func writeCleanData(res cleaning.Result) (string, error) {
	path := cfg.CleanCSVPath()
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("create processed dir: %w", err)
	}
	if err := exporter.WriteCleanCSV(path, res.Records, cfg.Export.BOM); err != nil {
		return "", err
	}
	return path, nil
}

func chartOptions() charts.Options {
	return charts.Options{
		WidthPx:  cfg.Chart.WidthPx,
		HeightPx: cfg.Chart.HeightPx,
		DPI:      cfg.Chart.DPI,
	}
}

// journeyOptions halves the dashboard height for the single-row chart.
func journeyOptions() charts.Options {
	o := chartOptions()
	o.HeightPx = o.HeightPx / 2
	return o
}

func init() {
	rootCmd.AddCommand(runCmd)
}
