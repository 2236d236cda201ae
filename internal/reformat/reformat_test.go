package reformat

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reformatString(t *testing.T, in string) string {
	t.Helper()
	var out bytes.Buffer
	_, err := Reformat(strings.NewReader(in), &out)
	require.NoError(t, err)
	return out.String()
}

func TestReformat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"multi-line records", ">seq1\nAAAA\nCCCC\n>seq2\nGGGG\n", ">seq1\nAAAACCCC\n>seq2\nGGGG\n"},
		{"empty input", "", "\n"},
		{"no headers", "AAAA\nCCCC\n", "AAAACCCC\n"},
		{"consecutive headers", ">a\n>b\n", ">a\n>b\n"},
		{"sequence before first header", "AAAA\n>b\nCC\n", "AAAA\n>b\nCC\n"},
		{"blank lines", ">a\nAA\n\nCC\n", ">a\nAACC\n"},
		{"unterminated last line", ">a\nAC\nGT", ">a\nACGT\n"},
		{"carriage returns kept", ">a\r\nAC\r\nGT\r\n", ">a\r\nAC\rGT\r\n"},
		{"content untouched", ">x desc  here\nac gt\nNN-n\n", ">x desc  here\nac gtNN-n\n"},
		{"single newline", "\n", "\n"},
		{"blank line keeps empty sequence line", ">a\n\n>b\n", ">a\n\n>b\n"},
		{"unterminated header", ">a", ">a\n"},
		{"header line starting with gt inside sequence", ">a\nAC\n>GT\n", ">a\nAC\n>GT\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reformatString(t, tt.in))
		})
	}
}

func TestReformatIsStableOnOwnOutput(t *testing.T) {
	inputs := []string{
		">seq1\nAAAA\nCCCC\n>seq2\nGGGG\n",
		">a\n>b\n",
		">only\nACGTACGT\nACGT\n\n",
	}
	for _, in := range inputs {
		once := reformatString(t, in)
		twice := reformatString(t, once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestReformatOneLinePerRecord(t *testing.T) {
	in := ">r1\nAC\nGT\nTT\n>r2\nA\n>r3\nCCC\nGGG\n"
	lines := strings.Split(strings.TrimSuffix(reformatString(t, in), "\n"), "\n")
	assert.Equal(t, []string{">r1", "ACGTTT", ">r2", "A", ">r3", "CCCGGG"}, lines)
}

func TestStats(t *testing.T) {
	var out bytes.Buffer
	stats, err := Reformat(strings.NewReader(">a\nACGT\nAC\n>b\n\nT\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, Stats{Lines: 6, Headers: 2, SequenceBytes: 7}, stats)
}

func TestIsHeader(t *testing.T) {
	assert.True(t, IsHeader(">"))
	assert.True(t, IsHeader(">>nested"))
	assert.False(t, IsHeader(" >indented"))
	assert.False(t, IsHeader(""))
}

func TestFinishIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	require.NoError(t, r.WriteLine(">a"))
	require.NoError(t, r.Finish())
	require.NoError(t, r.Finish())
	assert.Equal(t, ">a\n", out.String())
	assert.Error(t, r.WriteLine("AC"))
}

func TestConsumeFilesSharesState(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "one.fa")
	second := filepath.Join(dir, "two.fa")
	require.NoError(t, os.WriteFile(first, []byte(">a\nAC\nGT\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(">b\nTT\n"), 0o644))

	var out bytes.Buffer
	r := New(&out)
	require.NoError(t, r.ConsumeFiles([]string{first, StdinName, second}, strings.NewReader("CC\n")))
	require.NoError(t, r.Finish())
	assert.Equal(t, ">a\nACGTCC\n>b\nTT\n", out.String())
}

func TestConsumeFilesDefaultsToStdin(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	require.NoError(t, r.ConsumeFiles(nil, strings.NewReader(">s\nA\nC\n")))
	require.NoError(t, r.Finish())
	assert.Equal(t, ">s\nAC\n", out.String())
}

func TestConsumeFilesMissingFile(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	err := r.ConsumeFiles([]string{filepath.Join(t.TempDir(), "missing.fa")}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReformatWriteError(t *testing.T) {
	_, err := Reformat(strings.NewReader(">a\nAC\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
