package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"saltlens/internal/config"
	"saltlens/internal/logging"
)

var (
	// Global flags (wired to config in loadConfig)
	cfgFile       string
	flagData      string
	flagOut       string
	flagQuiet     bool
	flagLogLevel  string
	flagLogFormat string

	// Loaded configuration and logger
	cfg    *config.Global
	cfgErr error
	log    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "saltlens",
	Short: "SaltLens: customer discovery analysis for Blue Salt interviews",
	Long: `SaltLens ingests customer interview data, standardizes it, computes
Jobs-to-be-Done statistics, and renders charts plus a strategy report.

Run without arguments to execute the full pipeline on the configured
data file. Individual stages are available as subcommands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle (rootCmd -> runPipeline -> loadConfig -> rootCmd).
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPipeline()
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./saltlens.yaml, then ~/.saltlens/saltlens.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "interview data file, CSV or XLSX (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "output directory root (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	cfg, cfgErr = config.Load(cfgFile)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", cfgErr)
		return
	}

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && flagData != "" {
		cfg.DataFile = flagData
	}
	if f.Changed("out") && flagOut != "" {
		cfg.Output.Dir = flagOut
	}
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if f.Changed("log-format") && flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}

	log = logging.Setup(cfg.Log.Level, cfg.Log.Format)
}

// ensureConfig loads configuration on demand so commands also work when
// Execute's initializer has not run, as in tests driving rootCmd directly.
func ensureConfig() error {
	if cfg != nil {
		return nil
	}
	if cfgErr == nil {
		loadConfig()
	}
	if cfgErr != nil {
		return cfgErr
	}
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	return nil
}

func logger() *logrus.Logger {
	if log == nil {
		return logging.Discard()
	}
	return log
}

// say prints user-facing progress unless --quiet is set.
func say(format string, a ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, a...)
}
