package totals

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want lineKind
	}{
		{"empty line", "", lineBlank},
		{"header noise", "Totals for the day", lineBlank},
		{"plain words with single dashes", "a-b-c", lineBlank},
		{"alert line", "-1002-2-4", lineAlert},
		{"closing line", "7--5--120--3--0", lineClosing},
		{"closing line hour zero", "0--0--10--0--0", lineClosing},
		{"short closing", "8--1--60", lineMalformed},
		{"long closing", "8--1--60--0--2--9", lineMalformed},
		{"two fields", "oops--bad", lineMalformed},
		{"alert with text sigid", "-abc-2-4", lineMalformed},
		{"closing with text hour", "x--5--120--3--0", lineMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenize(tt.line); got.kind != tt.want {
				t.Errorf("tokenize(%q).kind = %v, want %v", tt.line, got.kind, tt.want)
			}
		})
	}
}

func TestTokenizeAlertFields(t *testing.T) {
	tok := tokenize("-5501-3-12")
	if tok.kind != lineAlert {
		t.Fatalf("kind = %v", tok.kind)
	}
	want := AlertRecord{SigID: 5501, Level: 3, Times: 12}
	if tok.alert != want {
		t.Errorf("alert = %+v, want %+v", tok.alert, want)
	}
}

func TestTokenizeClosingFields(t *testing.T) {
	tok := tokenize("23--17--904--12--3")
	if tok.kind != lineClosing {
		t.Fatalf("kind = %v", tok.kind)
	}
	r := tok.record
	if r.Hour != 23 || r.TotalAlerts != 17 || r.Events != 904 || r.Syscheck != 12 || r.Firewall != 3 {
		t.Errorf("record = %+v", r)
	}
}
