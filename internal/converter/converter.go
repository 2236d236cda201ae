// =============================================================================
// FASTA to Vienna Converter - Converter Module
// =============================================================================
//
// This module runs the conversion pipeline for a single file of a batch run,
// from opening the input to archiving it.
//
// CONVERSION PIPELINE:
//   1. Determine the output file name
//   2. Reformat the input into a staging file in the output directory
//   3. Rename the staging file into place
//   4. Archive the input file (when enabled)
//
// CONCURRENCY:
//   Each file gets its own Converter and its own Reformatter, so files share
//   no state and can be converted concurrently (see ProcessAll).
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/fasta2vienna/internal/config"
	"github.com/ginjaninja78/fasta2vienna/internal/reformat"
	"github.com/ginjaninja78/fasta2vienna/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the converted file.
	// This is empty if processing failed.
	OutputFile string

	// ArchivePath is where the input ended up. It equals FilePath when
	// archival is disabled or failed.
	ArchivePath string

	// Success indicates whether the conversion was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	reformat.Stats

	// ProcessingTime is the time taken to convert the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single FASTA file.
type Converter struct {
	inputPath  string
	outputPath string
	batch      *config.BatchConfig
	files      *utils.FileManager
	logger     logrus.FieldLogger
}

// New creates a Converter for inputPath.
func New(inputPath string, batch *config.BatchConfig, files *utils.FileManager, logger logrus.FieldLogger) *Converter {
	return &Converter{
		inputPath:  inputPath,
		outputPath: filepath.Join(files.OutputDir, utils.GenerateOutputFileName(batch.OutputNameFormat, inputPath)),
		batch:      batch,
		files:      files,
		logger:     logger.WithField("file", filepath.Base(inputPath)),
	}
}

// OutputPath is where Run writes the converted file. It is resolved once, so
// placeholders such as {uuid} expand to the same name every time.
func (c *Converter) OutputPath() string {
	return c.outputPath
}

// fail returns a failed Result for the converter's input.
func (c *Converter) fail(err error) Result {
	return Result{
		FilePath:    c.inputPath,
		ArchivePath: c.inputPath,
		Error:       err,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file. Failures are reported in
// the Result.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath:    c.inputPath,
		ArchivePath: c.inputPath,
	}

	c.logger.Info("converting")

	// STEP 1: output name.
	outputPath := c.outputPath
	if sameFile(outputPath, c.inputPath) {
		return c.fail(fmt.Errorf("output %s would overwrite the input", outputPath))
	}
	c.logger.WithField("output", outputPath).Debug("output resolved")

	// STEP 2-3: reformat through a staging file.
	stats, err := c.writeOutput(outputPath)
	result.Stats.Stats = stats
	if err != nil {
		result.Error = err
		return result
	}
	result.OutputFile = outputPath

	// STEP 4: archive. A failed archive is logged but does not fail the file.
	archivePath, err := c.files.ArchiveInputFile(c.inputPath)
	if err != nil {
		c.logger.WithError(err).Warn("failed to archive input")
	} else {
		result.ArchivePath = archivePath
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.WithFields(logrus.Fields{
		"lines":   stats.Lines,
		"records": stats.Headers,
		"elapsed": result.Stats.ProcessingTime,
	}).Info("converted")

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeOutput reformats the input into a temporary file next to outputPath
// and renames it into place, so a failure never leaves partial output.
func (c *Converter) writeOutput(outputPath string) (reformat.Stats, error) {
	in, err := os.Open(c.inputPath)
	if err != nil {
		return reformat.Stats{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	tmpPath := utils.TempName(filepath.Dir(outputPath), outputPath)
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return reformat.Stats{}, fmt.Errorf("failed to create output: %w", err)
	}

	stats, err := reformat.Reformat(in, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output: %w", cerr)
	}
	if err == nil {
		if rerr := os.Rename(tmpPath, outputPath); rerr != nil {
			err = fmt.Errorf("failed to move output into place: %w", rerr)
		}
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return stats, err
	}
	return stats, nil
}

func sameFile(a, b string) bool {
	return pathKey(a) == pathKey(b)
}

// pathKey normalises a path for comparison.
func pathKey(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
