package totals

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

var testDate = time.Date(2026, time.August, 7, 0, 0, 0, 0, time.UTC)

// writeLog writes a totals log for testDate under root.
func writeLog(t *testing.T, root, content string) {
	t.Helper()
	path := filepath.Join(root, "totals", "2026", "Aug", "hostsentry-totals-07.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"single digit day", time.Date(2026, time.August, 7, 12, 0, 0, 0, time.UTC), "totals/2026/Aug/hostsentry-totals-07.log"},
		{"double digit day", time.Date(2021, time.January, 25, 0, 0, 0, 0, time.UTC), "totals/2021/Jan/hostsentry-totals-25.log"},
		{"december", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "totals/2025/Dec/hostsentry-totals-31.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser("/stats", nil, nil)
			got := p.Path(tt.date)
			if got != filepath.Join("/stats", tt.want) {
				t.Errorf("Path = %q, want suffix %q", got, tt.want)
			}
		})
	}
}

func TestTotalsMissingFile(t *testing.T) {
	p := NewParser(t.TempDir(), nil, nil)

	_, _, err := p.Totals(testDate)
	if err == nil {
		t.Fatal("expected error for missing totals log")
	}
	if platform.KindOf(err) != platform.KindSourceUnavailable {
		t.Errorf("kind = %v, want KindSourceUnavailable", platform.KindOf(err))
	}
	if !strings.Contains(err.Error(), "hostsentry-totals-07.log") {
		t.Errorf("error should carry the resolved path: %v", err)
	}
}

func TestTotalsWellFormed(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, strings.Join([]string{
		"Totals for the day",
		"",
		"-1002-2-4",
		"-5501-3-1",
		"7--5--120--3--0",
		"-1002-2-1",
		"8--1--60--0--2",
	}, "\n")+"\n")

	records, failed, err := NewParser(root, nil, nil).Totals(testDate)
	if err != nil {
		t.Fatal(err)
	}
	if failed {
		t.Error("failed = true on a clean log")
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Hour != 7 || first.TotalAlerts != 5 || first.Events != 120 || first.Syscheck != 3 || first.Firewall != 0 {
		t.Errorf("first record = %+v", first)
	}
	if len(first.Alerts) != 2 {
		t.Fatalf("first hour has %d alerts, want 2", len(first.Alerts))
	}
	if first.Alerts[0] != (AlertRecord{SigID: 1002, Level: 2, Times: 4}) {
		t.Errorf("alert[0] = %+v", first.Alerts[0])
	}
	if first.Alerts[1] != (AlertRecord{SigID: 5501, Level: 3, Times: 1}) {
		t.Errorf("alert[1] = %+v", first.Alerts[1])
	}

	second := records[1]
	if second.Hour != 8 || len(second.Alerts) != 1 {
		t.Errorf("second record = %+v", second)
	}
	if second.Alerts[0].SigID != 1002 || second.Alerts[0].Times != 1 {
		t.Errorf("second hour alert = %+v", second.Alerts[0])
	}
}

func TestTotalsHourWithoutAlerts(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "3--0--40--1--0\n")

	records, failed, err := NewParser(root, nil, nil).Totals(testDate)
	if err != nil || failed {
		t.Fatalf("err=%v failed=%v", err, failed)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Alerts == nil || len(records[0].Alerts) != 0 {
		t.Errorf("Alerts should be an empty, non-nil slice: %#v", records[0].Alerts)
	}
}

func TestTotalsMalformedStopsWithPartialResults(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantRecords int
	}{
		{
			name:        "three field closing line",
			lines:       []string{"7--5--120--3--0", "8--1--60", "9--2--70--0--0"},
			wantRecords: 1,
		},
		{
			name:        "six field closing line",
			lines:       []string{"8--1--60--0--2--9"},
			wantRecords: 0,
		},
		{
			name:        "two field line",
			lines:       []string{"7--5--120--3--0", "oops--bad"},
			wantRecords: 1,
		},
		{
			name:        "non numeric closing field",
			lines:       []string{"7--5--120--3--0", "x--5--120--3--0"},
			wantRecords: 1,
		},
		{
			name:        "non numeric alert field",
			lines:       []string{"-abc-2-4"},
			wantRecords: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeLog(t, root, strings.Join(tt.lines, "\n")+"\n")

			records, failed, err := NewParser(root, nil, nil).Totals(testDate)
			if err != nil {
				t.Fatal(err)
			}
			if !failed {
				t.Error("failed = false, want true")
			}
			if len(records) != tt.wantRecords {
				t.Errorf("got %d partial records, want %d", len(records), tt.wantRecords)
			}
		})
	}
}

func TestTotalsTrailingAlertsDropped(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, strings.Join([]string{
		"7--5--120--3--0",
		"-1002-2-4",
		"-1003-5-1",
	}, "\n")+"\n")

	records, failed, err := NewParser(root, nil, nil).Totals(testDate)
	if err != nil || failed {
		t.Fatalf("err=%v failed=%v", err, failed)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if len(records[0].Alerts) != 0 {
		t.Errorf("trailing alerts leaked into the closed hour: %+v", records[0].Alerts)
	}
}

type captureRecorder struct {
	failed  bool
	records int
	calls   int
}

func (c *captureRecorder) RecordTotalsParse(failed bool, records int) {
	c.failed = failed
	c.records = records
	c.calls++
}

func TestTotalsRecordsOutcome(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "7--5--120--3--0\nbad--line\n")

	rec := &captureRecorder{}
	_, _, err := NewParser(root, nil, rec).Totals(testDate)
	if err != nil {
		t.Fatal(err)
	}
	if rec.calls != 1 || !rec.failed || rec.records != 1 {
		t.Errorf("recorder saw %+v, want one failed call with 1 record", rec)
	}
}

func TestTotalsErrorIsPlatformError(t *testing.T) {
	p := NewParser(filepath.Join(t.TempDir(), "nope"), nil, nil)
	_, _, err := p.Totals(testDate)

	var pe *platform.Error
	if !errors.As(err, &pe) {
		t.Fatal("error should be a platform error")
	}
}
