package statfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

func writeStats(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostsentry-analysisd.state")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadWellFormed(t *testing.T) {
	path := writeStats(t, strings.Join([]string{
		"# State file for hostsentry-analysisd",
		"",
		"events_received='120.5'",
		"events_dropped='3'",
		"syscheck_queue_usage='0.25'",
	}, "\n")+"\n")

	got, err := NewParser(nil, nil).Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d wrappers, want 1", len(got))
	}

	stats := got[0]
	want := Stats{
		"events_received":      120.5,
		"events_dropped":       3,
		"syscheck_queue_usage": 0.25,
	}
	if len(stats) != len(want) {
		t.Fatalf("got %d keys, want %d: %v", len(stats), len(want), stats)
	}
	for k, v := range want {
		if stats[k] != v {
			t.Errorf("%s = %v, want %v", k, stats[k], v)
		}
	}
}

func TestReadDuplicateKeyLastWins(t *testing.T) {
	path := writeStats(t, "queue_size='10'\nqueue_size='20'\n")

	got, err := NewParser(nil, nil).Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got[0]["queue_size"] != 20 {
		t.Errorf("queue_size = %v, want 20 (last wins)", got[0]["queue_size"])
	}
}

func TestReadSkipsComments(t *testing.T) {
	// A '#' anywhere on the line disqualifies it, not just at the start.
	path := writeStats(t, "good='1'\nkey='2' # trailing comment\n")

	got, err := NewParser(nil, nil).Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got[0]) != 1 {
		t.Errorf("commented line should be skipped: %v", got[0])
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewParser(nil, nil).Read(filepath.Join(t.TempDir(), "absent.state"))
	if platform.KindOf(err) != platform.KindSourceUnavailable {
		t.Errorf("kind = %v, want KindSourceUnavailable", platform.KindOf(err))
	}
}

func TestReadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non numeric value", "events='abc'\n"},
		{"no separator", "events\n"},
		{"value too short", "events='\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeStats(t, tt.content)
			_, err := NewParser(nil, nil).Read(path)
			if platform.KindOf(err) != platform.KindInternalParse {
				t.Errorf("kind = %v (err=%v), want KindInternalParse", platform.KindOf(err), err)
			}
		})
	}
}

type outcomeRecorder struct{ ok, fail int }

func (r *outcomeRecorder) RecordStatFileParse(ok bool) {
	if ok {
		r.ok++
	} else {
		r.fail++
	}
}

func TestReadRecordsOutcome(t *testing.T) {
	rec := &outcomeRecorder{}
	p := NewParser(nil, rec)

	if _, err := p.Read(writeStats(t, "a='1'\n")); err != nil {
		t.Fatal(err)
	}
	_, _ = p.Read(filepath.Join(t.TempDir(), "absent"))

	if rec.ok != 1 || rec.fail != 1 {
		t.Errorf("recorder = %+v, want ok=1 fail=1", rec)
	}
}
