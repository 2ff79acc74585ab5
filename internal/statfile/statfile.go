// Package statfile parses a daemon's flat runtime-counter file.
//
// The format is one counter per line, key='value' style:
//
//	# comment
//	events_received='120.5'
//	events_dropped='3'
//
// Keys are whatever the file defines; a duplicated key overwrites the
// earlier value.
package statfile

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

// Stats maps a counter name to its value.
type Stats map[string]float64

// Recorder receives parse outcomes for instrumentation. Implemented by
// metrics.Collector; nil disables recording.
type Recorder interface {
	RecordStatFileParse(ok bool)
}

// Parser reads daemon stat files.
type Parser struct {
	logger   *slog.Logger
	recorder Recorder
}

// NewParser creates a Parser. logger and recorder may be nil.
func NewParser(logger *slog.Logger, recorder Recorder) *Parser {
	return &Parser{logger: logger, recorder: recorder}
}

// Read parses the stats file at path into a one-element slice wrapping the
// counter mapping, matching the shape the API layer returns for file-backed
// stats.
//
// A file that cannot be opened is a source-unavailable error carrying the
// path. A file that opens but fails structural parsing is an internal-parse
// error wrapping the cause: the file is present but corrupt, which is a
// different signal to the operator.
func (p *Parser) Read(path string) ([]Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		p.record(false)
		return nil, platform.SourceUnavailable(path)
	}
	defer f.Close()

	items := Stats{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// Comments and blank separators carry no counters.
		if len(line) == 0 || strings.Contains(line, "#") {
			continue
		}
		key, value, err := parseCounter(line)
		if err != nil {
			p.record(false)
			if p.logger != nil {
				p.logger.Warn("statfile_corrupt", "path", path, "error", err)
			}
			return nil, platform.InternalParse(err)
		}
		items[key] = value
	}
	if err := scanner.Err(); err != nil {
		p.record(false)
		return nil, platform.SourceUnavailable(path)
	}

	p.record(true)
	return []Stats{items}, nil
}

// parseCounter splits one key='value' line and parses the quoted value as a
// float. The value's first and last characters are the quotes and are
// stripped unconditionally.
func parseCounter(line string) (string, float64, error) {
	parts := strings.Split(line, "=")
	if len(parts) < 2 {
		return "", 0, fmt.Errorf("no separator in line %q", line)
	}
	key, quoted := parts[0], parts[1]
	if len(quoted) < 2 {
		return "", 0, fmt.Errorf("unquoted value in line %q", line)
	}
	value, err := strconv.ParseFloat(quoted[1:len(quoted)-1], 64)
	if err != nil {
		return "", 0, err
	}
	return key, value, nil
}

func (p *Parser) record(ok bool) {
	if p.recorder != nil {
		p.recorder.RecordStatFileParse(ok)
	}
}
