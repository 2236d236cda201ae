// =============================================================================
// FASTA to Vienna Converter - Processing Summary
// =============================================================================
//
// A batch run ends with a summary written to the output directory:
//   - processing_summary_<timestamp>.txt   always (when summaries are enabled)
//   - processing_summary_<timestamp>.xlsx  optionally, one row per file
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// ProcessingSummary contains summary information about a batch run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalLines      int
	TotalHeaders    int
	TotalResidues   int64
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a successfully converted file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	Lines       int
	Headers     int
	Residues    int64
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

const rule = "================================================================================\n"

func summaryPath(outputDir, stamp, ext string) string {
	return filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s%s", stamp, ext))
}

// WriteSummaryLog writes summary as plain text into outputDir and returns the
// file path.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	path := summaryPath(outputDir, summary.EndTime.Format("20060102_150405"), ".txt")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "FASTA to Vienna Converter - Processing Summary\n"+rule+"\n"+
		"Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n"+
		"  Total Lines:    %d\n"+
		"  Total Records:  %d\n"+
		"  Total Residues: %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.TotalLines,
		summary.TotalHeaders,
		summary.TotalResidues)

	if len(summary.ProcessedFiles) > 0 {
		fmt.Fprint(w, "Successful Files:\n")
		fmt.Fprint(w, "--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(w, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(w, "  Output:       %s\n", pf.OutputFile)
			if pf.ArchivePath != "" && pf.ArchivePath != pf.InputFile {
				fmt.Fprintf(w, "  Archived To:  %s\n", pf.ArchivePath)
			}
			fmt.Fprintf(w, "  Records:      %d\n", pf.Headers)
			fmt.Fprintf(w, "  Process Time: %s\n\n", pf.ProcessTime)
		}
	}

	if len(summary.FailedFilesList) > 0 {
		fmt.Fprint(w, "Failed Files:\n")
		fmt.Fprint(w, "--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(w, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(w, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	fmt.Fprint(w, rule+"End of Summary\n")

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return path, nil
}

// Sheet names used by WriteSummaryWorkbook.
const (
	OverviewSheet = "Summary"
	FilesSheet    = "Files"
)

// FilesHeader is the header row of the Files sheet.
var FilesHeader = []interface{}{"Input", "Output", "Status", "Lines", "Records", "Residues", "Seconds", "Error"}

// WriteSummaryWorkbook writes summary as an .xlsx workbook into outputDir and
// returns the file path.
func WriteSummaryWorkbook(summary ProcessingSummary, outputDir string) (string, error) {
	path := summaryPath(outputDir, summary.EndTime.Format("20060102_150405"), ".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}
	overview := [][]interface{}{
		{"Start Time", summary.StartTime.Format("2006-01-02 15:04:05")},
		{"End Time", summary.EndTime.Format("2006-01-02 15:04:05")},
		{"Total Files", summary.TotalFiles},
		{"Successful", summary.SuccessfulFiles},
		{"Failed", summary.FailedFiles},
		{"Total Lines", summary.TotalLines},
		{"Total Records", summary.TotalHeaders},
		{"Total Residues", summary.TotalResidues},
	}
	for i, row := range overview {
		if err := setRow(f, OverviewSheet, i+1, row); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet(FilesSheet); err != nil {
		return "", fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(f, FilesSheet, 1, FilesHeader); err != nil {
		return "", err
	}
	row := 2
	for _, pf := range summary.ProcessedFiles {
		values := []interface{}{pf.InputFile, pf.OutputFile, "ok", pf.Lines, pf.Headers, pf.Residues, pf.ProcessTime.Seconds(), ""}
		if err := setRow(f, FilesSheet, row, values); err != nil {
			return "", err
		}
		row++
	}
	for _, ff := range summary.FailedFilesList {
		values := []interface{}{ff.InputFile, "", "failed", 0, 0, 0, 0, ff.ErrorMessage}
		if err := setRow(f, FilesSheet, row, values); err != nil {
			return "", err
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save summary workbook: %w", err)
	}
	return path, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
