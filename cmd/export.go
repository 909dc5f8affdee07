package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/notion-standup/internal"
	"github.com/iksnae/notion-standup/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportInput  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export a standup document in another format",
	Long: `Convert a fetched standup document (standups.json) into json, jsonl,
md or yaml. The result is written next to the other outputs as
standups.<ext>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		inputPath := exportInput
		if inputPath == "" {
			inputPath = cfg.StandupPath()
		}
		doc, err := internal.LoadStandupDocument(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load standup document: %w", err)
		}

		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outputPath := filepath.Join(cfg.OutputDir, "standups."+exporter.Extension())

		file, err := os.Create(outputPath)
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: outputPath, Err: err}
		}
		if err := exporter.Export(doc, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: exportFormat, Path: outputPath, Err: err}
		}
		if err := file.Close(); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: outputPath, Err: err}
		}

		internal.PrintSuccess(fmt.Sprintf("Exported %d page(s) to %s", doc.PageCount, outputPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (json, jsonl, md, yaml)")
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Standup document to export (default <out>/standups.json)")
}
