// =============================================================================
// FASTA to Vienna Converter - Line Reformatter
// =============================================================================
//
// This module contains the core transformation. It collapses every record of
// a FASTA stream onto a single line following its header:
//
//   >seq1              >seq1
//   AAAA        ->     AAAACCCC
//   CCCC               >seq2
//   >seq2              GGGG
//   GGGG
//
// ALGORITHM:
//   For each input line, in order:
//     - Header (starts with '>'): if a sequence line is still open, terminate
//       it with a line break. Then write the header and its line break.
//     - Anything else: append the line verbatim to the open sequence line.
//   After the last line, terminate the open sequence line. Empty input
//   produces a single line break.
//
// The reformatter never validates its input. A first line that is not a
// header is sequence data, and a sequence line starting with '>' is a header.
// Blank lines add nothing to the sequence but still open its line.
//
// =============================================================================

package reformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// HeaderPrefix marks the beginning of a FASTA record.
const HeaderPrefix = ">"

// =============================================================================
// STATISTICS
// =============================================================================

// Stats counts what a Reformatter has consumed. It never affects output.
type Stats struct {
	// Lines is the number of input lines read.
	Lines int

	// Headers is the number of lines that began with '>'.
	Headers int

	// SequenceBytes is the number of non-header bytes written.
	SequenceBytes int64
}

// =============================================================================
// REFORMATTER
// =============================================================================

// Reformatter collapses FASTA records onto single lines as they stream past.
// Its state spans every Consume call, so several inputs behave like one
// stream. A Reformatter is not safe for concurrent use.
type Reformatter struct {
	out *bufio.Writer

	// inSequence is set while the current output line holds sequence data
	// that still needs its terminating line break.
	inSequence bool
	finished   bool
	stats      Stats
}

// New returns a Reformatter writing to w.
func New(w io.Writer) *Reformatter {
	return &Reformatter{out: bufio.NewWriter(w)}
}

// IsHeader reports whether line starts a new record.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, HeaderPrefix)
}

// WriteLine processes a single input line. The line must not contain its
// terminating '\n'.
func (r *Reformatter) WriteLine(line string) error {
	if r.finished {
		return errors.New("reformat: write after finish")
	}

	r.stats.Lines++

	if !IsHeader(line) {
		r.stats.SequenceBytes += int64(len(line))
		r.inSequence = true
		_, err := r.out.WriteString(line)
		return err
	}

	r.stats.Headers++
	if r.inSequence {
		if err := r.out.WriteByte('\n'); err != nil {
			return err
		}
		r.inSequence = false
	}
	if _, err := r.out.WriteString(line); err != nil {
		return err
	}
	return r.out.WriteByte('\n')
}

// Consume feeds every line of src through WriteLine. Lines are split on '\n'
// only; a trailing '\r' stays part of the line. A final line without a
// terminating newline is still processed.
func (r *Reformatter) Consume(src io.Reader) error {
	br := bufio.NewReader(src)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		eof := err != nil
		if eof && line == "" {
			return nil
		}
		line = strings.TrimSuffix(line, "\n")
		if werr := r.WriteLine(line); werr != nil {
			return fmt.Errorf("failed to write output: %w", werr)
		}
		if eof {
			return nil
		}
	}
}

// Finish terminates the last record and flushes buffered output. Calling
// Finish more than once is a no-op.
func (r *Reformatter) Finish() error {
	if r.finished {
		return nil
	}
	r.finished = true
	if r.inSequence || r.stats.Lines == 0 {
		if err := r.out.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		r.inSequence = false
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// Stats returns the counters accumulated so far.
func (r *Reformatter) Stats() Stats {
	return r.stats
}

// Reformat converts a single stream from src to dst.
func Reformat(src io.Reader, dst io.Writer) (Stats, error) {
	r := New(dst)
	if err := r.Consume(src); err != nil {
		return r.Stats(), err
	}
	if err := r.Finish(); err != nil {
		return r.Stats(), err
	}
	return r.Stats(), nil
}
