package config

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses command-line flags and returns a Config.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `hostsentry-stats - operational statistics for the hostsentry platform

Usage:
  hostsentry-stats [flags]

Platform Layout:
`)
		printFlagCategory([]string{"stats-root", "socket-dir", "keys-file", "date-format"})

		fmt.Fprintf(os.Stderr, "\nQueries (one-shot, print JSON):\n")
		printFlagCategory([]string{"hourly", "weekly", "totals", "totals-date", "statfile", "getstate", "agent", "agents", "daemon"})

		fmt.Fprintf(os.Stderr, "\nControl Socket:\n")
		printFlagCategory([]string{"socket-timeout"})

		fmt.Fprintf(os.Stderr, "\nObservability:\n")
		printFlagCategory([]string{"metrics", "v", "log-format", "log-level"})

		fmt.Fprintf(os.Stderr, "\nDashboard:\n")
		printFlagCategory([]string{"tui", "tui-refresh"})

		fmt.Fprintf(os.Stderr, `
Examples:
  # Hourly activity averages
  hostsentry-stats -hourly

  # Alert totals for a specific day
  hostsentry-stats -totals -totals-date 2026-08-01

  # Live state of the analysis daemon on agent 001
  hostsentry-stats -getstate -agent 001 -daemon hostsentry-analysisd

  # Live dashboard with Prometheus metrics
  hostsentry-stats -tui -metrics 0.0.0.0:17092

`)
	}

	// Platform layout
	flag.StringVar(&cfg.StatsRoot, "stats-root", cfg.StatsRoot, "Base directory of the stats store")
	flag.StringVar(&cfg.SocketDir, "socket-dir", cfg.SocketDir, "Directory holding daemon control sockets")
	flag.StringVar(&cfg.KeysFile, "keys-file", cfg.KeysFile, "Agent registration keys file")
	flag.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "Canonical date layout in Go time format (empty = platform default)")

	// Queries
	flag.BoolVar(&cfg.Hourly, "hourly", cfg.Hourly, "Print hourly activity averages")
	flag.BoolVar(&cfg.Weekly, "weekly", cfg.Weekly, "Print weekly activity averages")
	flag.BoolVar(&cfg.Totals, "totals", cfg.Totals, "Print per-hour alert totals")
	flag.StringVar(&cfg.TotalsDate, "totals-date", cfg.TotalsDate, "Date for -totals as YYYY-MM-DD (default today)")
	flag.StringVar(&cfg.StatFilePath, "statfile", cfg.StatFilePath, "Print counters from a daemon stats file at this path")
	flag.BoolVar(&cfg.GetState, "getstate", cfg.GetState, "Query live daemon state over the control socket")
	flag.StringVar(&cfg.AgentID, "agent", cfg.AgentID, "Agent ID for -getstate (000 = local manager)")
	flag.StringVar(&cfg.AgentList, "agents", cfg.AgentList, "Comma-separated agent IDs for a batch component query")
	flag.StringVar(&cfg.Daemon, "daemon", cfg.Daemon, "Daemon name for -getstate")

	// Control socket
	flag.DurationVar(&cfg.SocketTimeout, "socket-timeout", cfg.SocketTimeout, "Deadline for one socket round trip (0 = none)")

	// Observability
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, `Log level: "debug", "info", "warn", "error"`)

	// Dashboard
	flag.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Enable live terminal dashboard")
	flag.DurationVar(&cfg.TUIRefresh, "tui-refresh", cfg.TUIRefresh, "Dashboard refresh interval")

	flag.Parse()

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(names []string) {
	for _, name := range names {
		f := flag.Lookup(name)
		if f == nil {
			continue
		}
		fmt.Fprintf(os.Stderr, "  -%s\n    \t%s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
			fmt.Fprintf(os.Stderr, " (default %s)", f.DefValue)
		}
		fmt.Fprintln(os.Stderr)
	}
}
