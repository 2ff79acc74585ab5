package agents

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

func writeKeysFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.keys")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing keys file: %v", err)
	}
	return path
}

func TestKeysFileInventory(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name: "registered agents",
			content: "001 web-01 10.0.0.5 a1b2c3\n" +
				"002 db-01 10.0.0.6 d4e5f6\n" +
				"017 edge any 9f8e7d\n",
			want: []string{"001", "002", "017"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name: "removed agents skipped",
			content: "001 web-01 10.0.0.5 a1b2c3\n" +
				"002 !db-01 10.0.0.6 d4e5f6\n",
			want: []string{"001"},
		},
		{
			name: "comments and blank lines skipped",
			content: "# registration keys\n" +
				"\n" +
				"003 api-01 any 112233\n",
			want: []string{"003"},
		},
		{
			name: "short lines skipped",
			content: "004 incomplete\n" +
				"005 ok any 445566\n",
			want: []string{"005"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := KeysFileInventory{Path: writeKeysFile(t, tt.content)}

			known, err := inv.KnownAgents()
			if err != nil {
				t.Fatalf("KnownAgents() error = %v", err)
			}
			if len(known) != len(tt.want) {
				t.Fatalf("KnownAgents() = %v, want IDs %v", known, tt.want)
			}
			for _, id := range tt.want {
				if _, ok := known[id]; !ok {
					t.Errorf("KnownAgents() missing %q", id)
				}
			}
		})
	}
}

func TestKeysFileInventoryMissingFile(t *testing.T) {
	inv := KeysFileInventory{Path: filepath.Join(t.TempDir(), "absent.keys")}

	_, err := inv.KnownAgents()
	if err == nil {
		t.Fatal("KnownAgents() expected error for missing file")
	}
	var perr *platform.Error
	if !errors.As(err, &perr) {
		t.Fatalf("KnownAgents() error = %T, want *platform.Error", err)
	}
	if perr.Kind != platform.KindSourceUnavailable {
		t.Errorf("Kind = %v, want KindSourceUnavailable", perr.Kind)
	}
}
