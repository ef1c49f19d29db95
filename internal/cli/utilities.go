package cli

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/track-assets/internal/assets"
	"github.com/pfrederiksen/track-assets/internal/config"
	"github.com/spf13/cobra"
)

// Default gallery file names
const (
	DefaultGalleryInput  = "cars.html"
	DefaultGalleryOutput = "updated_png_titles.csv"
)

func newGalleryCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Extract image file names and titles from saved gallery pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			items, err := assets.ExtractGalleryFiles(input)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := assets.WriteGalleryCSV(f, items); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			return WriteUtilityReport(cmd.OutOrStdout(), &UtilityReport{
				Command:   "gallery",
				Output:    output,
				Items:     items,
				Succeeded: len(items),
			}, format)
		},
	}

	cmd.Flags().StringVar(&input, "input", DefaultGalleryInput, "Saved HTML page or glob (supports **)")
	cmd.Flags().StringVar(&output, "output", DefaultGalleryOutput, "CSV file to write")

	return cmd
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename",
		Short: "Rename files according to the CSV mapping in config.properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			cfg, err := config.LoadUtility(flagConfig)
			if err != nil {
				return err
			}

			rc := cfg.Rename
			required := []struct{ key, val string }{
				{config.KeyCSVPath, rc.CSVPath},
				{config.KeyFolderPath, rc.Folder},
				{config.KeyColumnCurr, rc.CurrentColumn},
				{config.KeyColumnNew, rc.NewColumn},
			}
			for _, setting := range required {
				if setting.val == "" {
					return fmt.Errorf("%w: '%s' property not found in %s", config.ErrMissingSetting, setting.key, flagConfig)
				}
			}

			results, err := assets.Rename(rc.CSVPath, rc.Folder, rc.CurrentColumn, rc.NewColumn)
			if err != nil {
				return err
			}

			return WriteUtilityReport(cmd.OutOrStdout(), newUtilityReport("rename", results), format)
		},
	}
}

func newSortClassesCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "sort-classes",
		Short: "Move files into class subfolders of [SETTINGS] folder_path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			cfg, err := config.LoadUtility(flagConfig)
			if err != nil {
				return err
			}
			if cfg.ClassFolder == "" {
				return fmt.Errorf("%w: '%s' property not found in [%s] section of %s",
					config.ErrMissingSetting, config.KeyFolderPath, config.SectionSettings, flagConfig)
			}

			results, err := assets.SortIntoClasses(csvPath, cfg.ClassFolder)
			if err != nil {
				return err
			}

			return WriteUtilityReport(cmd.OutOrStdout(), newUtilityReport("sort-classes", results), format)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", assets.DefaultClassCSV, "Class mapping CSV (class, file)")

	return cmd
}
