// Package main provides the hostsentry-stats CLI entry point.
//
// hostsentry-stats answers operational-statistics queries for a hostsentry
// deployment: historical activity averages, per-day alert totals, daemon
// runtime counters, and live daemon state over the local control socket.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hostsentry/hostsentry-stats/internal/agents"
	"github.com/hostsentry/hostsentry-stats/internal/averages"
	"github.com/hostsentry/hostsentry-stats/internal/config"
	"github.com/hostsentry/hostsentry-stats/internal/control"
	"github.com/hostsentry/hostsentry-stats/internal/logging"
	"github.com/hostsentry/hostsentry-stats/internal/metrics"
	"github.com/hostsentry/hostsentry-stats/internal/platform"
	"github.com/hostsentry/hostsentry-stats/internal/statfile"
	"github.com/hostsentry/hostsentry-stats/internal/totals"
	"github.com/hostsentry/hostsentry-stats/internal/tui"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/hostsentry-stats
var version = "dev"

// dashboardDaemons are the manager daemons the TUI polls by default.
var dashboardDaemons = []string{
	"hostsentry-analysisd",
	"hostsentry-remoted",
	"hostsentry-logcollector",
}

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("hostsentry-stats %s\n", version)
			return 0
		}
	}

	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// When the TUI owns the terminal, logs are suppressed.
	var logger *slog.Logger
	if cfg.TUIEnabled {
		logger = logging.Discard()
	} else {
		logger = logging.NewLogger(cfg.LogFormat, cfg.LogLevel, cfg.Verbose)
	}
	logging.SetDefault(logger)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	collector := metrics.NewCollector(30 * time.Second)
	if cfg.MetricsAddr != "" {
		server := metrics.NewServer(cfg.MetricsAddr, logger)
		server.Start()
	}

	formatter := platform.NewDateFormatter(cfg.DateFormat)
	reader := averages.NewReader(cfg.StatsRoot, logger, collector)
	totalsParser := totals.NewParser(cfg.StatsRoot, logger, collector)
	fileParser := statfile.NewParser(logger, collector)
	client := control.NewClient(
		cfg.SocketDir,
		control.UnixTransport{Timeout: cfg.SocketTimeout},
		formatter,
		logger,
		collector,
	)

	if cfg.TUIEnabled {
		return runDashboard(cfg, client, reader, collector)
	}

	ran := false

	if cfg.Hourly {
		ran = true
		printJSON(reader.Hourly())
	}
	if cfg.Weekly {
		ran = true
		printJSON(reader.Weekly())
	}
	if cfg.Totals {
		ran = true
		date, err := resolveTotalsDate(cfg.TotalsDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		records, parseFailed, err := totalsParser.Totals(date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		printJSON(map[string]any{"failed": parseFailed, "affected": records})
	}
	if cfg.StatFilePath != "" {
		ran = true
		stats, err := fileParser.Read(cfg.StatFilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		printJSON(stats)
	}
	if cfg.GetState {
		ran = true
		state, err := client.DaemonState(cfg.AgentID, cfg.Daemon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		printJSON(state)
	}
	if cfg.AgentList != "" {
		ran = true
		aggregator := agents.NewAggregator(
			agents.KeysFileInventory{Path: cfg.KeysFile},
			agents.SocketFetcher{Client: client},
			logger,
			collector,
		)
		failed, affected, err := aggregator.ComponentStats(splitAgentList(cfg.AgentList), cfg.Daemon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		printJSON(map[string]any{"failed": failed, "affected": affected})
	}

	if !ran {
		flag.Usage()
		return 2
	}
	return 0
}

// runDashboard polls daemon state and averages until the user quits.
func runDashboard(cfg *config.Config, client *control.Client, reader *averages.Reader, collector *metrics.Collector) int {
	daemons := dashboardDaemons
	if cfg.Daemon != "" {
		daemons = []string{cfg.Daemon}
	}

	source := &dashboardSource{
		client:    client,
		reader:    reader,
		collector: collector,
		daemons:   daemons,
	}

	model := tui.New(tui.Config{Source: source, Refresh: cfg.TUIRefresh})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Dashboard error: %v\n", err)
		return 1
	}
	return 0
}

// dashboardSource builds TUI snapshots from live queries against the
// manager's daemons and the average store.
type dashboardSource struct {
	client    *control.Client
	reader    *averages.Reader
	collector *metrics.Collector
	daemons   []string
}

func (s *dashboardSource) Snapshot() tui.Snapshot {
	snap := tui.Snapshot{Taken: time.Now()}

	for _, daemon := range s.daemons {
		state, err := s.client.DaemonState("000", daemon)
		snap.Daemons = append(snap.Daemons, tui.DaemonState{
			Daemon: daemon,
			Fields: state,
			Err:    err,
		})
	}

	snap.Hourly = s.reader.Hourly()[0]
	snap.RTTP50, snap.RTTMax = s.collector.RTTQuantiles()
	return snap
}

// splitAgentList turns the comma separated -agents value into IDs,
// dropping empty entries and surrounding whitespace.
func splitAgentList(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// resolveTotalsDate parses the -totals-date value, defaulting to today.
func resolveTotalsDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("totals date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
	}
}
