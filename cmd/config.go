package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "saltlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set SaltLens configuration",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = "saltlens.yaml"
		}
		if err := refuseExisting(path, configInitForce); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfgpkg.Default(), path); err != nil {
			return err
		}
		say("✓ Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		fmt.Printf("data_file: %s\n", cfg.DataFile)
		fmt.Printf("output.dir: %s\n", cfg.Output.Dir)
		fmt.Printf("output.charts_dir: %s\n", cfg.Output.ChartsDir)
		fmt.Printf("output.reports_dir: %s\n", cfg.Output.ReportsDir)
		fmt.Printf("output.processed_dir: %s\n", cfg.Output.ProcessedDir)
		fmt.Printf("export.bom: %t\n", cfg.Export.BOM)
		fmt.Printf("chart.dpi: %d\n", cfg.Chart.DPI)
		fmt.Printf("chart.width_px: %d\n", cfg.Chart.WidthPx)
		fmt.Printf("chart.height_px: %d\n", cfg.Chart.HeightPx)
		fmt.Printf("log.level: %s\n", cfg.Log.Level)
		fmt.Printf("log.format: %s\n", cfg.Log.Format)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		key, val := args[0], args[1]
		switch key {
		case "data_file":
			cfg.DataFile = val
		case "output.dir":
			cfg.Output.Dir = val
		case "output.charts_dir":
			cfg.Output.ChartsDir = val
		case "output.reports_dir":
			cfg.Output.ReportsDir = val
		case "output.processed_dir":
			cfg.Output.ProcessedDir = val
		case "export.bom":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid export.bom: %s (use true or false)", val)
			}
			cfg.Export.BOM = b
		case "chart.dpi", "chart.width_px", "chart.height_px":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid %s: %s (use a positive integer)", key, val)
			}
			switch key {
			case "chart.dpi":
				cfg.Chart.DPI = n
			case "chart.width_px":
				cfg.Chart.WidthPx = n
			case "chart.height_px":
				cfg.Chart.HeightPx = n
			}
		case "log.level":
			cfg.Log.Level = val
		case "log.format":
			cfg.Log.Format = val
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Validate(cfg); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		path := cfgFile
		if path == "" {
			path = "saltlens.yaml"
		}
		fmt.Printf("✓ Saved %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}
