package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args.
func runCLI(t *testing.T, args ...string) {
	t.Helper()
	resetState()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func runCLIExpectError(t *testing.T, args ...string) {
	t.Helper()
	resetState()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("command %v succeeded, want error", args)
	}
}

// resetState clears sticky config and flag state between invocations.
func resetState() {
	cfg = nil
	cfgErr = nil
	log = nil
	cfgFile = ""
	flagData = ""
	flagOut = ""
	flagQuiet = false
	flagLogLevel = ""
	flagLogFormat = ""
	cleanOutPath = ""
	analyzeJSON = false
	initForce = false
	configInitForce = false
	for _, name := range []string{"config", "data", "out", "quiet", "log-level", "log-format"} {
		if fl := rootCmd.PersistentFlags().Lookup(name); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	}
	if fl := cleanCmd.Flags().Lookup("output"); fl != nil {
		_ = fl.Value.Set("")
		fl.Changed = false
	}
	if fl := analyzeCmd.Flags().Lookup("json"); fl != nil {
		_ = fl.Value.Set("false")
		fl.Changed = false
	}
	if fl := initCmd.Flags().Lookup("force"); fl != nil {
		_ = fl.Value.Set("false")
		fl.Changed = false
	}
	if fl := configInitCmd.Flags().Lookup("force"); fl != nil {
		_ = fl.Value.Set("false")
		fl.Changed = false
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// setupWorkspace isolates HOME, moves into a temp dir, and scaffolds it.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	runCLI(t, "init", ".")
	return dir
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(data) < 8 || string(data[:8]) != "\x89PNG\r\n\x1a\n" {
		t.Fatalf("%s is not a PNG (first bytes %q)", path, data[:min(8, len(data))])
	}
}

func TestCLI_FullPipeline(t *testing.T) {
	setupWorkspace(t)

	runCLI(t, "-q")

	assertPNG(t, filepath.Join("outputs", "visualizations", "jtbd_dashboard.png"))
	assertPNG(t, filepath.Join("outputs", "visualizations", "journey_satisfaction.png"))

	reportText, err := os.ReadFile(filepath.Join("outputs", "reports", "analysis_report.txt"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{"BLUE SALT CUSTOMER DISCOVERY ANALYSIS", "42.9%", "57.1%", "Social Currency Tool"} {
		if !strings.Contains(string(reportText), want) {
			t.Fatalf("report missing %q", want)
		}
	}

	summaryBytes, err := os.ReadFile(filepath.Join("outputs", "reports", "analysis_summary.json"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var summary struct {
		Meta struct {
			RunID string `json:"run_id"`
		} `json:"meta"`
		Analysis struct {
			SampleSize int `json:"sample_size"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(summaryBytes, &summary); err != nil {
		t.Fatalf("summary json: %v", err)
	}
	if summary.Meta.RunID == "" || summary.Analysis.SampleSize != 7 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	csvBytes, err := os.ReadFile(filepath.Join("data", "processed", "interviews_clean.csv"))
	if err != nil {
		t.Fatalf("read clean csv: %v", err)
	}
	content := strings.TrimPrefix(string(csvBytes), "\uFEFF")
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("clean csv has %d lines, want 8 (header + 7 records)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "participant_id,") {
		t.Fatalf("clean csv header = %q", lines[0])
	}
}

func TestCLI_StageCommands(t *testing.T) {
	setupWorkspace(t)

	runCLI(t, "clean")
	if _, err := os.Stat(filepath.Join("data", "processed", "interviews_clean.csv")); err != nil {
		t.Fatalf("clean did not write csv: %v", err)
	}

	runCLI(t, "charts")
	assertPNG(t, filepath.Join("outputs", "visualizations", "jtbd_dashboard.png"))
	assertPNG(t, filepath.Join("outputs", "visualizations", "journey_satisfaction.png"))

	runCLI(t, "report")
	if _, err := os.Stat(filepath.Join("outputs", "reports", "analysis_report.txt")); err != nil {
		t.Fatalf("report did not write text report: %v", err)
	}
	if _, err := os.Stat(filepath.Join("outputs", "reports", "analysis_summary.json")); err != nil {
		t.Fatalf("report did not write summary json: %v", err)
	}

	runCLI(t, "analyze", "--json")
	runCLI(t, "run", "-q")
}

func TestCLI_CleanOutputFlag(t *testing.T) {
	setupWorkspace(t)

	out := filepath.Join("exports", "clean.csv")
	runCLI(t, "clean", "-o", out)
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("clean -o did not write %s: %v", out, err)
	}
}

func TestCLI_InitRefusesOverwrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	runCLI(t, "init", ".")
	runCLIExpectError(t, "init", ".")
	runCLI(t, "init", ".", "--force")
}

func TestCLI_DataFlagOverride(t *testing.T) {
	setupWorkspace(t)

	alt := filepath.Join("data", "surveys.csv")
	if err := os.Rename(filepath.Join("data", "interviews.csv"), alt); err != nil {
		t.Fatalf("rename data: %v", err)
	}

	runCLIExpectError(t, "-q")
	runCLI(t, "--data", alt, "-q")
	assertPNG(t, filepath.Join("outputs", "visualizations", "jtbd_dashboard.png"))
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setupWorkspace(t)

	runCLI(t, "config", "set", "chart.dpi", "50")
	data, err := os.ReadFile("saltlens.yaml")
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "dpi: 50") {
		t.Fatalf("config not persisted:\n%s", data)
	}

	runCLI(t, "config", "show")
	runCLIExpectError(t, "config", "set", "nope", "1")
	runCLIExpectError(t, "config", "set", "chart.dpi", "zero")
	runCLIExpectError(t, "config", "set", "log.level", "loud")
}

func TestCLI_ConfigInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	runCLI(t, "config", "init")
	data, err := os.ReadFile("saltlens.yaml")
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "data_file: data/interviews.csv") {
		t.Fatalf("default config not written:\n%s", data)
	}

	runCLIExpectError(t, "config", "init")
	runCLI(t, "config", "init", "--force")
}
