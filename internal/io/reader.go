package io

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/baldidon/transfermarkt-api/internal/extraction"
)

// ErrNoIDs is returned when neither arguments nor the input file name a manager.
var ErrNoIDs = errors.New("no manager ids given")

// IDReader reads manager ids from arguments and an optional input file
type IDReader struct {
	Config *config.IOConfig
}

// NewIDReader creates a new id reader
func NewIDReader(config *config.IOConfig) *IDReader {
	return &IDReader{
		Config: config,
	}
}

// ReadFromFile reads ids from a file, one per line. Blank lines and lines
// starting with # are skipped.
func (r *IDReader) ReadFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			ids = append(ids, NormalizeID(line))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// GetIDs returns the ids given as args followed by those of the configured
// input file.
func (r *IDReader) GetIDs(args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			ids = append(ids, NormalizeID(a))
		}
	}

	if r.Config != nil && r.Config.InputFile != "" {
		fromFile, err := r.ReadFromFile(r.Config.InputFile)
		if err != nil {
			return nil, err
		}
		ids = append(ids, fromFile...)
	}

	if len(ids) == 0 {
		return nil, ErrNoIDs
	}
	return ids, nil
}

// NormalizeID accepts either a bare id or a profile URL and returns the id.
// Anything else is returned as is.
func NormalizeID(s string) string {
	if strings.Contains(s, "/") {
		if id := extraction.IDFromURL(s); id != "" {
			return id
		}
	}
	return s
}
