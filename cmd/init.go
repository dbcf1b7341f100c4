package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"saltlens/internal/config"
	"saltlens/internal/interview"
	"saltlens/internal/utils"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a SaltLens workspace with config and sample data",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create workspace dir: %w", err)
		}

		c := config.Default()
		cfgPath := filepath.Join(dir, "saltlens.yaml")
		if err := refuseExisting(cfgPath, initForce); err != nil {
			return err
		}
		if err := config.Save(c, cfgPath); err != nil {
			return err
		}

		dataPath := filepath.Join(dir, c.DataFile)
		if err := refuseExisting(dataPath, initForce); err != nil {
			return err
		}
		if err := utils.EnsureDir(filepath.Dir(dataPath)); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		if err := os.WriteFile(dataPath, []byte(interview.SampleCSV), 0o644); err != nil {
			return fmt.Errorf("write sample data: %w", err)
		}

		for _, sub := range []string{
			filepath.Join(dir, c.Output.Dir, c.Output.ChartsDir),
			filepath.Join(dir, c.Output.Dir, c.Output.ReportsDir),
			filepath.Join(dir, c.Output.ProcessedDir),
		} {
			if err := utils.EnsureDir(sub); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		say("✓ Workspace initialized: %s\n", dir)
		say("  config: %s\n", cfgPath)
		say("  sample data: %s\n", dataPath)
		say("Run `saltlens` in that directory to execute the pipeline.\n")
		return nil
	},
}

// refuseExisting guards scaffold targets unless force is set.
func refuseExisting(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if force {
			return nil
		}
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config and sample data")
}
