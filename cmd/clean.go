package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"saltlens/internal/exporter"
	"saltlens/internal/utils"
)

var cleanOutPath string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Standardize the interview data and export the cleaned CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		res, err := loadAndClean()
		if err != nil {
			return err
		}

		path := cleanOutPath
		if path == "" {
			path, err = writeCleanData(res)
			if err != nil {
				return err
			}
		} else {
			if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := exporter.WriteCleanCSV(path, res.Records, cfg.Export.BOM); err != nil {
				return err
			}
		}

		s := res.Summary
		say("Cleaned %d records: %d usage values recoded, %d scores filled, %d text fields normalized\n",
			s.Records, s.RecodedUsage, s.FilledScores, s.NormalizedFields)
		say("✓ Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutPath, "output", "o", "", "output CSV path (default from config)")
}
