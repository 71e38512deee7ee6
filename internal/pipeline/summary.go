package pipeline

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/stat"
)

// BatchSummary accumulates per-image records. It is append-only during a run
// and serialized once at the end.
type BatchSummary struct {
	Records []ImageRecord
}

// Append adds a record for an image that reached Saved.
func (s *BatchSummary) Append(r ImageRecord) {
	s.Records = append(s.Records, r)
}

// WriteTo serializes the summary as tab-separated text with one row per
// processed image: label, particle count, total foreground area, %coverage.
func (s *BatchSummary) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := fmt.Fprintf(w, "Slice\tCount\tTotal Area\t%%Area\n")
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, r := range s.Records {
		n, err := fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\n", r.File, r.Count, r.TotalArea, r.Coverage)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteFile serializes the summary to the given path.
func (s *BatchSummary) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if _, err := s.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// CoverageStats returns the mean and standard deviation of %coverage across
// all recorded images.
func (s *BatchSummary) CoverageStats() (mean, stddev float64) {
	if len(s.Records) == 0 {
		return 0, 0
	}
	coverages := make([]float64, len(s.Records))
	for i, r := range s.Records {
		coverages[i] = r.Coverage
	}
	mean = stat.Mean(coverages, nil)
	if len(coverages) > 1 {
		stddev = stat.StdDev(coverages, nil)
	}
	return mean, stddev
}
