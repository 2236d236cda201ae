// Package wrap turns single-line (Vienna style) FASTA back into records with
// fixed-width sequence lines. Any FASTA layout is accepted on input.
package wrap

import (
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// DefaultWidth is the conventional FASTA line width.
const DefaultWidth = 60

// ErrWidth is returned for a non-positive line width.
var ErrWidth = errors.New("wrap: width must be greater than 0")

// Wrap copies every record from src to dst with sequence lines of at most
// width residues and returns the number of records written. Headers keep
// their ID and description, rejoined by a single space. Input must start with
// a header line.
func Wrap(src io.Reader, dst io.Writer, width int) (int, error) {
	if width < 1 {
		return 0, ErrWidth
	}

	out := &tailWriter{w: dst}
	w := fasta.NewWriter(out, width)
	sc := seqio.NewScanner(fasta.NewReader(src, linear.NewSeq("", nil, alphabet.DNA)))

	records := 0
	for sc.Next() {
		s := sc.Seq()
		if _, err := w.Write(s); err != nil {
			return records, fmt.Errorf("failed to write sequence %q: %w", s.Name(), err)
		}
		records++
	}
	if err := sc.Error(); err != nil {
		return records, fmt.Errorf("failed during read: %w", err)
	}

	if out.n > 0 && out.last != '\n' {
		if _, err := dst.Write([]byte{'\n'}); err != nil {
			return records, err
		}
	}
	return records, nil
}

// tailWriter remembers how much was written and the final byte, so Wrap can
// terminate the last line exactly once.
type tailWriter struct {
	w    io.Writer
	n    int64
	last byte
}

func (t *tailWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.n += int64(n)
		t.last = p[n-1]
	}
	return n, err
}
