package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanInputs lists the input candidates in dir in name order. Entries are
// skipped when they are sub-directories, carry the output-folder prefix of a
// previous run, or end with the summary file extension; everything else is
// treated as an input.
func ScanInputs(dir, outputPrefix, summaryExt string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if outputPrefix != "" && strings.HasPrefix(name, outputPrefix) {
			continue
		}
		if summaryExt != "" && strings.HasSuffix(name, summaryExt) {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, name))
	}

	sort.Strings(inputs)
	return inputs, nil
}
