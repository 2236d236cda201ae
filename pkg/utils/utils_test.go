package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.fasta"), ">b\n")
	touch(t, filepath.Join(dir, "a.fa"), ">a\n")
	touch(t, filepath.Join(dir, "notes.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.fa"), 0o755))

	fm := NewFileManager(dir, filepath.Join(dir, "out"), "", false)
	files, err := fm.DiscoverInputFiles([]string{"*.fa", "*.fasta", "a.*"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.fa"), filepath.Join(dir, "b.fasta")}, files)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "nested")
	archive := filepath.Join(dir, "archive")

	fm := NewFileManager(dir, out, archive, true)
	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, out)
	assert.DirExists(t, archive)

	missing := NewFileManager(filepath.Join(dir, "missing"), out, archive, false)
	assert.Error(t, missing.EnsureDirectories())
}

func TestArchiveInputFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.fa")
	touch(t, src, ">a\nAC\n")

	disabled := NewFileManager(dir, dir, filepath.Join(dir, "archive"), false)
	got, err := disabled.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.FileExists(t, src)

	fm := NewFileManager(dir, dir, filepath.Join(dir, "archive"), true)
	got, err = fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "archive", "in.fa"), got)
	assert.NoFileExists(t, src)
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, ">a\nAC\n", string(data))
}

func TestGenerateOutputFileName(t *testing.T) {
	assert.Equal(t, "reads.vienna.fa", GenerateOutputFileName("{original}.vienna.fa", "/data/reads.fasta"))
	assert.Equal(t, "plain", GenerateOutputFileName("plain", "x.fa"))

	withUUID := GenerateOutputFileName("{original}_{uuid}.fa", "x.fa")
	assert.Regexp(t, regexp.MustCompile(`^x_[0-9a-f-]{36}\.fa$`), withUUID)
	assert.NotEqual(t, withUUID, GenerateOutputFileName("{original}_{uuid}.fa", "x.fa"))

	dated := GenerateOutputFileName("{date}.fa", "x.fa")
	assert.Regexp(t, regexp.MustCompile(`^\d{8}\.fa$`), dated)
}

func TestTempName(t *testing.T) {
	name := TempName("/out", "/out/x.fa")
	assert.Equal(t, "/out", filepath.Dir(name))
	assert.Regexp(t, regexp.MustCompile(`^\.x\.fa\.[0-9a-f-]{36}\.tmp$`), filepath.Base(name))
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(io.EOF))
	assert.False(t, IsBrokenPipe(nil))
}

func sampleSummary() ProcessingSummary {
	end := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	return ProcessingSummary{
		StartTime:       end.Add(-2 * time.Second),
		EndTime:         end,
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalLines:      5,
		TotalHeaders:    2,
		TotalResidues:   12,
		ProcessedFiles: []ProcessedFileInfo{
			{InputFile: "in/a.fa", OutputFile: "out/a.vienna.fa", Lines: 5, Headers: 2, Residues: 12, ProcessTime: time.Millisecond},
		},
		FailedFilesList: []FailedFileInfo{
			{InputFile: "in/b.fa", ErrorMessage: "permission denied"},
		},
	}
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteSummaryLog(sampleSummary(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processing_summary_20240115_143022.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total Files:    2")
	assert.Contains(t, text, "Output:       out/a.vienna.fa")
	assert.Contains(t, text, "Error: permission denied")
	assert.Contains(t, text, "End of Summary")
}

func TestWriteSummaryWorkbook(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteSummaryWorkbook(sampleSummary(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processing_summary_20240115_143022.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(OverviewSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	rows, err := f.GetRows(FilesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Input", rows[0][0])
	assert.Equal(t, []string{"in/a.fa", "out/a.vienna.fa", "ok"}, rows[1][:3])
	assert.Equal(t, "failed", rows[2][2])
	assert.Equal(t, "permission denied", rows[2][7])
}
