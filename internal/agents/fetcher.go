package agents

import (
	"github.com/hostsentry/hostsentry-stats/internal/control"
)

// SocketFetcher resolves per-agent stats through the control socket
// client, asking the named daemon for its state on behalf of the agent.
type SocketFetcher struct {
	Client *control.Client
}

func (f SocketFetcher) FetchAgentStats(agentID, component string) (Payload, error) {
	state, err := f.Client.DaemonState(agentID, component)
	if err != nil {
		return nil, err
	}
	return Payload(state), nil
}
