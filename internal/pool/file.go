package pool

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads options from a flat text file, one option per line.
// Blank lines are skipped.
func LoadFile(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open options file: %w", err)
	}
	defer f.Close()

	var options []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text != "" {
			options = append(options, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}

	return New(options)
}
