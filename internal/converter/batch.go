package converter

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/fasta2vienna/internal/config"
	"github.com/ginjaninja78/fasta2vienna/pkg/utils"
)

// ProcessAll converts every path with at most batch.MaxConcurrency files in
// flight. Results come back in the order of paths.
//
// When several inputs resolve to the same output file, the first in paths is
// converted and the others fail without being read, written or archived.
func ProcessAll(paths []string, batch *config.BatchConfig, files *utils.FileManager, logger logrus.FieldLogger) []Result {
	workers := batch.MaxConcurrency
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(paths))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	owners := make(map[string]string, len(paths))
	for i, path := range paths {
		c := New(path, batch, files, logger)
		key := pathKey(c.OutputPath())
		if owner, taken := owners[key]; taken {
			results[i] = c.fail(fmt.Errorf("output %s collides with %s", c.OutputPath(), filepath.Base(owner)))
			c.logger.WithError(results[i].Error).Warn("skipping input")
			continue
		}
		owners[key] = path

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c *Converter) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = c.Run()
		}(i, c)
	}

	wg.Wait()
	return results
}

// Summarize folds results into a ProcessingSummary for reporting.
func Summarize(results []Result, start, end time.Time) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		StartTime:  start,
		EndTime:    end,
		TotalFiles: len(results),
	}

	for _, r := range results {
		if !r.Success {
			summary.FailedFiles++
			msg := "unknown error"
			if r.Error != nil {
				msg = r.Error.Error()
			}
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: msg,
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalLines += r.Stats.Lines
		summary.TotalHeaders += r.Stats.Headers
		summary.TotalResidues += r.Stats.SequenceBytes
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   r.FilePath,
			OutputFile:  r.OutputFile,
			ArchivePath: r.ArchivePath,
			Lines:       r.Stats.Lines,
			Headers:     r.Stats.Headers,
			Residues:    r.Stats.SequenceBytes,
			ProcessTime: r.Stats.ProcessingTime,
		})
	}

	return summary
}
