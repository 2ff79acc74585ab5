package totals

import (
	"strconv"
	"strings"
)

// lineKind tags the outcome of tokenizing one log line.
type lineKind int

const (
	lineBlank     lineKind = iota // skip silently
	lineAlert                     // accumulate into the pending buffer
	lineClosing                   // flush the pending buffer into a Record
	lineMalformed                 // stop parsing, keep partial results
)

// token is the tagged result of tokenizing one line. Exactly one of alert
// and record is meaningful, selected by kind.
type token struct {
	kind   lineKind
	alert  AlertRecord
	record Record
}

// tokenize classifies one line of the totals log.
//
// An alert line splits on "-" into exactly 4 fields (the first is empty,
// the line starts with the separator). Everything else splits on "--": 5
// fields close an hour, a single field is blank noise, and any other count
// is malformed. Field values that fail integer parsing are malformed too;
// the field-count contract is necessary but not sufficient.
func tokenize(line string) token {
	if fields := strings.Split(line, "-"); len(fields) == 4 {
		alert, ok := parseAlert(fields)
		if !ok {
			return token{kind: lineMalformed}
		}
		return token{kind: lineAlert, alert: alert}
	}

	fields := strings.Split(line, "--")
	switch len(fields) {
	case 1:
		return token{kind: lineBlank}
	case 5:
		rec, ok := parseClosing(fields)
		if !ok {
			return token{kind: lineMalformed}
		}
		return token{kind: lineClosing, record: rec}
	default:
		return token{kind: lineMalformed}
	}
}

// parseAlert builds an AlertRecord from a 4-field "-" split. Field 0 is the
// empty prefix before the leading separator.
func parseAlert(fields []string) (AlertRecord, bool) {
	sigid, err1 := strconv.Atoi(strings.TrimSpace(fields[1]))
	level, err2 := strconv.Atoi(strings.TrimSpace(fields[2]))
	times, err3 := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err1 != nil || err2 != nil || err3 != nil {
		return AlertRecord{}, false
	}
	return AlertRecord{SigID: sigid, Level: level, Times: times}, true
}

// parseClosing builds a Record (without its alerts) from a 5-field "--"
// split.
func parseClosing(fields []string) (Record, bool) {
	values := make([]int, 5)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Record{}, false
		}
		values[i] = v
	}
	return Record{
		Hour:        values[0],
		TotalAlerts: values[1],
		Events:      values[2],
		Syscheck:    values[3],
		Firewall:    values[4],
	}, true
}
