// =============================================================================
// FASTA to Vienna Converter - Batch Command
// =============================================================================
//
// This file defines the 'batch' command, which converts every FASTA file in
// an input directory.
//
// COMMAND USAGE:
//   fasta2vienna batch [flags]
//
// FLAGS:
//   --dry-run      : List what would be converted without writing anything
//   --input-dir    : Directory to scan (batch.input_dir)
//   --output-dir   : Directory for converted files (batch.output_dir)
//   --concurrency  : Files converted at once (batch.max_concurrency)
//   --archive      : Move inputs to the archive directory once converted
//   --xlsx         : Also write the summary as an .xlsx workbook
//
// PROCESSING PIPELINE:
//   1. Validate the batch configuration
//   2. Discover FASTA files in the input directory
//   3. Convert files concurrently (see converter.ProcessAll)
//   4. Print per-file results and totals
//   5. Write summary reports
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fasta2vienna/internal/config"
	"github.com/ginjaninja78/fasta2vienna/internal/converter"
	"github.com/ginjaninja78/fasta2vienna/pkg/utils"
)

func newBatchCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every FASTA file in a directory",
		Long: `The batch command scans the input directory for files matching the
configured patterns and writes a Vienna-style copy of each one to the output
directory.

Files are converted concurrently and independently: a failure in one file
does not affect the others. Output is staged under a temporary name and only
appears once complete.

On success:
  - The converted file is placed in the output directory
  - The input is moved to the archive directory (when archiving is enabled)

On error:
  - The input remains where it was
  - The error is listed in the summary and the command exits non-zero`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list planned conversions without writing files")
	cmd.Flags().String("input-dir", "", "directory scanned for FASTA files")
	cmd.Flags().String("output-dir", "", "directory for converted files")
	cmd.Flags().String("archive-dir", "", "directory receiving converted inputs")
	cmd.Flags().Bool("archive", false, "move inputs to the archive directory once converted")
	cmd.Flags().Int("concurrency", 0, "maximum number of files converted at once")
	cmd.Flags().String("name-format", "", "output file name format")
	cmd.Flags().Bool("xlsx", false, "also write the summary as an .xlsx workbook")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, dryRun bool) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()
	batch := &a.cfg.Batch

	// =========================================================================
	// STEP 1: VALIDATE CONFIGURATION
	// =========================================================================

	if err := config.ValidateBatch(batch); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	files := utils.NewFileManager(batch.InputDir, batch.OutputDir, batch.ArchiveDir, batch.ArchiveInputs)
	if dryRun {
		if !utils.FileExists(batch.InputDir) {
			return fmt.Errorf("input directory %s does not exist", batch.InputDir)
		}
	} else if err := files.EnsureDirectories(); err != nil {
		return err
	}

	inputFiles, err := files.DiscoverInputFiles(batch.Patterns)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No FASTA files found in the input directory.")
		return nil
	}

	if dryRun {
		for _, path := range inputFiles {
			target := converter.New(path, batch, files, a.logger).OutputPath()
			fmt.Fprintf(out, "  would convert %s -> %s\n", filepath.Base(path), target)
		}
		fmt.Fprintf(out, "%d file(s) would be converted\n", len(inputFiles))
		return nil
	}

	a.logger.WithField("files", len(inputFiles)).Info("starting batch")

	// =========================================================================
	// STEP 3: CONVERT FILES CONCURRENTLY
	// =========================================================================

	results := converter.ProcessAll(inputFiles, batch, files, a.logger)

	// =========================================================================
	// STEP 4: PRINT RESULTS
	// =========================================================================

	for _, result := range results {
		if result.Success {
			fmt.Fprintf(out, "  ✓ %s -> %s\n", filepath.Base(result.FilePath), result.OutputFile)
		} else {
			fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	summary := converter.Summarize(results, startTime, time.Now())
	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	// =========================================================================
	// STEP 5: WRITE SUMMARY REPORTS
	// =========================================================================

	if batch.Summary {
		path, err := utils.WriteSummaryLog(summary, batch.OutputDir)
		if err != nil {
			a.logger.WithError(err).Warn("failed to write summary log")
		} else {
			a.logger.WithField("path", path).Info("wrote summary log")
		}
	}
	if batch.SummaryXLSX {
		path, err := utils.WriteSummaryWorkbook(summary, batch.OutputDir)
		if err != nil {
			a.logger.WithError(err).Warn("failed to write summary workbook")
		} else {
			a.logger.WithField("path", path).Info("wrote summary workbook")
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}
