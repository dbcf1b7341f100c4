package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataFile string `mapstructure:"data_file" yaml:"data_file"`
	Output   Output `mapstructure:"output" yaml:"output"`
	Export   Export `mapstructure:"export" yaml:"export"`
	Chart    Chart  `mapstructure:"chart" yaml:"chart"`
	Log      Log    `mapstructure:"log" yaml:"log"`
}

// Output controls where pipeline artifacts are written.
type Output struct {
	Dir          string `mapstructure:"dir" yaml:"dir"`
	ChartsDir    string `mapstructure:"charts_dir" yaml:"charts_dir"`
	ReportsDir   string `mapstructure:"reports_dir" yaml:"reports_dir"`
	ProcessedDir string `mapstructure:"processed_dir" yaml:"processed_dir"`
}

// Export controls the cleaned-data CSV export.
type Export struct {
	BOM bool `mapstructure:"bom" yaml:"bom"`
}

// Chart controls rendered image dimensions.
type Chart struct {
	DPI      int `mapstructure:"dpi" yaml:"dpi"`
	WidthPx  int `mapstructure:"width_px" yaml:"width_px"`
	HeightPx int `mapstructure:"height_px" yaml:"height_px"`
}

// Log controls pipeline logging.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Fixed artifact names under the configured directories.
const (
	DashboardFile   = "jtbd_dashboard.png"
	JourneyFile     = "journey_satisfaction.png"
	ReportFile      = "analysis_report.txt"
	SummaryJSONFile = "analysis_summary.json"
	CleanCSVFile    = "interviews_clean.csv"
)

// DashboardPath returns the output path of the dashboard image.
func (c *Global) DashboardPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ChartsDir, DashboardFile)
}

// JourneyPath returns the output path of the journey satisfaction chart.
func (c *Global) JourneyPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ChartsDir, JourneyFile)
}

// ReportPath returns the output path of the text report.
func (c *Global) ReportPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ReportsDir, ReportFile)
}

// SummaryJSONPath returns the output path of the analysis summary JSON.
func (c *Global) SummaryJSONPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ReportsDir, SummaryJSONFile)
}

// CleanCSVPath returns the output path of the cleaned-data export.
func (c *Global) CleanCSVPath() string {
	return filepath.Join(c.Output.ProcessedDir, CleanCSVFile)
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		DataFile: filepath.Join("data", "interviews.csv"),
		Output: Output{
			Dir:          "outputs",
			ChartsDir:    "visualizations",
			ReportsDir:   "reports",
			ProcessedDir: filepath.Join("data", "processed"),
		},
		Export: Export{BOM: true},
		Chart:  Chart{DPI: 100, WidthPx: 1600, HeightPx: 1200},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ./saltlens.yaml in the working directory.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		path = "saltlens.yaml"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SALTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults; every key needs one so env overrides reach Unmarshal.
	d := Default()
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.charts_dir", d.Output.ChartsDir)
	v.SetDefault("output.reports_dir", d.Output.ReportsDir)
	v.SetDefault("output.processed_dir", d.Output.ProcessedDir)
	v.SetDefault("export.bom", d.Export.BOM)
	v.SetDefault("chart.dpi", d.Chart.DPI)
	v.SetDefault("chart.width_px", d.Chart.WidthPx)
	v.SetDefault("chart.height_px", d.Chart.HeightPx)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	// Config file
	if cfgFile == "" {
		cfgFile = os.Getenv("SALTLENS_CONFIG")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("saltlens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".saltlens"))
		}
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks configuration values before the pipeline touches them.
func Validate(c *Global) error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("config: data_file must not be empty")
	}
	if c.Chart.DPI <= 0 {
		return fmt.Errorf("config: chart.dpi must be positive, got %d", c.Chart.DPI)
	}
	if c.Chart.WidthPx <= 0 || c.Chart.HeightPx <= 0 {
		return fmt.Errorf("config: chart dimensions must be positive, got %dx%d", c.Chart.WidthPx, c.Chart.HeightPx)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q (use debug|info|warn|error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log.format %q (use text|json)", c.Log.Format)
	}
	return nil
}
