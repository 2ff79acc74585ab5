package control

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

const (
	// managerID is the normalized agent ID of the local manager.
	managerID = "000"

	// requestSocket is the shared dispatch socket for remote agents.
	requestSocket = "request"

	// getStateCommand asks a daemon for its live state.
	getStateCommand = "getstate"

	// agentDaemon cannot report daemon-level state about the manager
	// itself; the manager has no agent daemon of its own.
	agentDaemon = "agent"
)

// Round-trip outcomes reported to the Recorder.
const (
	OutcomeOK          = "ok"
	OutcomeConnect     = "connect_error"
	OutcomeNoData      = "no_data"
	OutcomeDaemonError = "daemon_error"
)

// Recorder receives round-trip outcomes for instrumentation. Implemented
// by metrics.Collector; nil disables recording.
type Recorder interface {
	RecordSocketRoundTrip(d time.Duration, outcome string)
}

// Client queries daemon state through a control-socket transport.
type Client struct {
	socketDir string
	transport Transport
	formatter platform.DateFormatter
	logger    *slog.Logger
	recorder  Recorder
}

// NewClient creates a Client sending through transport to sockets under
// socketDir. logger and recorder may be nil.
func NewClient(socketDir string, transport Transport, formatter platform.DateFormatter, logger *slog.Logger, recorder Recorder) *Client {
	return &Client{
		socketDir: socketDir,
		transport: transport,
		formatter: formatter,
		logger:    logger,
		recorder:  recorder,
	}
}

// DaemonState fetches the live state of daemon on the given agent.
//
// The manager (agent ID normalizing to "000") is addressed through the
// daemon's own socket with a bare getstate command; remote agents go
// through the shared request socket with a routed command. The socket is
// closed on every path once opened, including decode failures.
func (c *Client) DaemonState(agentID, daemon string) (map[string]any, error) {
	if agentID == "" || daemon == "" {
		return nil, platform.InvalidParams("agent ID and daemon name are required")
	}

	id := normalizeAgentID(agentID)

	var socketPath, command string
	if id == managerID {
		if daemon == agentDaemon {
			return nil, platform.UnsupportedTarget(
				fmt.Sprintf("daemon %q does not run on the manager", daemon))
		}
		socketPath = filepath.Join(c.socketDir, daemon)
		command = getStateCommand
	} else {
		socketPath = filepath.Join(c.socketDir, requestSocket)
		command = fmt.Sprintf("%s %s %s", id, daemon, getStateCommand)
	}

	start := time.Now()

	conn, err := c.transport.Open(socketPath)
	if err != nil {
		c.record(start, OutcomeConnect)
		return nil, platform.CannotConnect(socketPath, err)
	}
	defer conn.Close()

	if err := conn.Send([]byte(command)); err != nil {
		c.record(start, OutcomeNoData)
		return nil, platform.NoData("command could not be sent")
	}

	raw, err := conn.Receive()
	if err != nil {
		c.record(start, OutcomeNoData)
		return nil, platform.NoData("data could not be received")
	}

	result := decodeReply(raw, c.formatter)
	if !result.Ok {
		c.record(start, OutcomeDaemonError)
		if c.logger != nil {
			c.logger.Warn("daemon_error_reply",
				"agent_id", id,
				"daemon", daemon,
				"message", result.ErrMsg,
			)
		}
		return nil, platform.DaemonError(result.ErrMsg)
	}

	c.record(start, OutcomeOK)
	if c.logger != nil {
		c.logger.Debug("daemon_state_received",
			"agent_id", id,
			"daemon", daemon,
			"fields", len(result.Data),
		)
	}
	return result.Data, nil
}

func (c *Client) record(start time.Time, outcome string) {
	if c.recorder != nil {
		c.recorder.RecordSocketRoundTrip(time.Since(start), outcome)
	}
}

// normalizeAgentID zero-pads short numeric IDs to 3 digits, matching how
// agents are addressed on the request socket.
func normalizeAgentID(id string) string {
	if len(id) >= 3 {
		return id
	}
	return strings.Repeat("0", 3-len(id)) + id
}
