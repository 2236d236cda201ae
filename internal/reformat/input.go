package reformat

import (
	"fmt"
	"io"
	"os"
)

// StdinName is the file operand that selects standard input.
const StdinName = "-"

// Open returns a reader for path. StdinName maps to stdin, which is never
// closed by the returned ReadCloser.
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == StdinName {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// ConsumeFiles feeds each path through r in order. With no paths it reads
// stdin. The caller still has to call Finish.
func (r *Reformatter) ConsumeFiles(paths []string, stdin io.Reader) error {
	if len(paths) == 0 {
		paths = []string{StdinName}
	}
	for _, path := range paths {
		if err := r.consumeFile(path, stdin); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reformatter) consumeFile(path string, stdin io.Reader) error {
	rc, err := Open(path, stdin)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := r.Consume(rc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
