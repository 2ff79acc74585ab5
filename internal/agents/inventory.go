package agents

import (
	"bufio"
	"os"
	"strings"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

// KeysFileInventory reads the agent registration keys file. Each entry is
// one line:
//
//	<id> <name> <ip> <key>
//
// Lines starting with '#' and removed agents (name prefixed with '!') are
// not part of the inventory.
type KeysFileInventory struct {
	Path string
}

// KnownAgents parses the keys file into the set of registered agent IDs.
// An unreadable keys file is a source-unavailable error: without it no
// agent can be resolved, which is different from an empty deployment.
func (inv KeysFileInventory) KnownAgents() (map[string]struct{}, error) {
	f, err := os.Open(inv.Path)
	if err != nil {
		return nil, platform.SourceUnavailable(inv.Path)
	}
	defer f.Close()

	known := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if strings.HasPrefix(fields[1], "!") {
			continue // removed agent, key kept for audit only
		}
		known[fields[0]] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, platform.SourceUnavailable(inv.Path)
	}

	return known, nil
}
