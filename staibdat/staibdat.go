package staibdat

import (
	"bufio"
	"fmt"
	"os"
)

// Default Savitzky-Golay tuning, matching the defaults of the original
// analysis tooling.
const (
	DefaultWindow = 13
	DefaultOrder  = 3
)

// Import reads a WinSpectro .dat file and returns the validated Dataset.
// The import is a strictly ordered sequence of passes over the line list:
// classify, validate structure, extract, cross-check, derive. Any failure
// returns a *FormatError and no Dataset.
func Import(filename string) (*Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("staibdat: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("staibdat: reading %s: %w", filename, err)
	}

	return build(filename, lines)
}

func build(filename string, lines []string) (*Dataset, error) {
	classes := make([]lineClass, len(lines))
	for i, line := range lines {
		classes[i] = classifyLine(line)
	}

	headerIdx, err := validateStructure(lines, classes)
	if err != nil {
		return nil, err
	}

	meta, cols := extractSections(lines, classes, headerIdx)

	if err := checkConsistency(meta, cols); err != nil {
		return nil, err
	}

	ke, be, channels, err := deriveChannels(meta, cols)
	if err != nil {
		return nil, err
	}

	fileText := make([]string, len(lines))
	copy(fileText, lines)

	return &Dataset{
		Filename: filename,
		FileText: fileText,
		Metadata: meta,
		Columns:  cols,
		KE:       ke,
		BE:       be,
		Channels: channels,
	}, nil
}
