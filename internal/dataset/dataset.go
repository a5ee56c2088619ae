// Package dataset loads count samples from files.
package dataset

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LoadSamples reads one count sample per line from the provided file path.
func LoadSamples(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only data file.
			_ = cerr
		}
	}()
	return ReadSamples(file)
}

// ReadSamples reads one count sample per line from a reader. Surrounding
// whitespace is trimmed and blank lines are skipped.
func ReadSamples(r io.Reader) ([]string, error) {
	var samples []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		samples = append(samples, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
