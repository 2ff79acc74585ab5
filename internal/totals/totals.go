// Package totals parses the daily alert-totals log.
//
// The log is a positional text format that alternates per-alert lines and
// per-hour summary lines:
//
//	-<sigid>-<level>-<times>                            alert line
//	<hour>--<alerts>--<events>--<syscheck>--<firewall>  hour-closing line
//
// Alert lines accumulate until an hour-closing line flushes them into one
// Record. Blank or header noise is skipped. Anything else is malformed and
// stops the parse, keeping the records accumulated so far.
package totals

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

const totalsDir = "totals"

// AlertRecord is one accumulated alert line.
type AlertRecord struct {
	SigID int `json:"sigid"`
	Level int `json:"level"`
	Times int `json:"times"`
}

// Record summarizes one affected hour of the day.
type Record struct {
	Hour        int           `json:"hour"`
	Alerts      []AlertRecord `json:"alerts"`
	TotalAlerts int           `json:"totalAlerts"`
	Events      int           `json:"events"`
	Syscheck    int           `json:"syscheck"`
	Firewall    int           `json:"firewall"`
}

// Recorder receives parse outcomes for instrumentation. Implemented by
// metrics.Collector; nil disables recording.
type Recorder interface {
	RecordTotalsParse(failed bool, records int)
}

// Parser resolves and parses daily totals logs under a stats root.
type Parser struct {
	root     string
	logger   *slog.Logger
	recorder Recorder
}

// NewParser creates a Parser rooted at statsRoot. logger and recorder may
// be nil.
func NewParser(statsRoot string, logger *slog.Logger, recorder Recorder) *Parser {
	return &Parser{
		root:     statsRoot,
		logger:   logger,
		recorder: recorder,
	}
}

// Path returns the log location for date:
// <root>/totals/<year>/<Mon>/hostsentry-totals-<DD>.log
func (p *Parser) Path(date time.Time) string {
	return filepath.Join(
		p.root,
		totalsDir,
		strconv.Itoa(date.Year()),
		date.Format("Jan"),
		fmt.Sprintf("hostsentry-totals-%s.log", date.Format("02")),
	)
}

// Totals parses the totals log for date.
//
// failed reports that a malformed line stopped the parse; the records
// accumulated before that line are still returned. A log that cannot be
// opened is a hard error carrying the resolved path: a missing daily totals
// file means a processing gap upstream, not a cold start.
func (p *Parser) Totals(date time.Time) (records []Record, failed bool, err error) {
	path := p.Path(date)
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, false, platform.SourceUnavailable(path)
	}
	defer f.Close()

	var pending []AlertRecord

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		switch tok := tokenize(scanner.Text()); tok.kind {
		case lineAlert:
			pending = append(pending, tok.alert)

		case lineClosing:
			rec := tok.record
			rec.Alerts = pending
			if rec.Alerts == nil {
				rec.Alerts = []AlertRecord{}
			}
			records = append(records, rec)
			pending = nil

		case lineBlank:
			// header noise

		case lineMalformed:
			if p.logger != nil {
				p.logger.Warn("totals_parse_stopped",
					"path", path,
					"records", len(records),
				)
			}
			p.record(true, len(records))
			return records, true, nil
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, false, platform.SourceUnavailable(path)
	}

	// Alert lines after the last closing line are dropped. This mirrors the
	// log writer's append/flush rhythm: an hour is only complete once its
	// closing line lands.
	p.record(false, len(records))
	return records, false, nil
}

func (p *Parser) record(failed bool, n int) {
	if p.recorder != nil {
		p.recorder.RecordTotalsParse(failed, n)
	}
}
