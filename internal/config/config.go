// Package config provides configuration management for hostsentry-stats.
package config

import "time"

// Config holds all configuration for the stats layer. Components receive
// the values they need at construction time; nothing reads ambient process
// state after ParseFlags returns.
type Config struct {
	// Platform layout
	StatsRoot  string `json:"stats_root"`  // base dir for averages and totals logs
	SocketDir  string `json:"socket_dir"`  // dir holding per-daemon control sockets
	KeysFile   string `json:"keys_file"`   // agent registration keys file
	DateFormat string `json:"date_format"` // Go time layout for canonical dates

	// Control socket
	SocketTimeout time.Duration `json:"socket_timeout"` // 0 = no deadline

	// One-shot query modes
	Hourly       bool   `json:"hourly"`
	Weekly       bool   `json:"weekly"`
	TotalsDate   string `json:"totals_date"`   // YYYY-MM-DD, empty = today when -totals set
	Totals       bool   `json:"totals"`
	StatFilePath string `json:"statfile_path"` // daemon stats file, empty = disabled
	GetState     bool   `json:"getstate"`
	AgentID      string `json:"agent_id"`
	AgentList    string `json:"agent_list"` // comma-separated IDs for a batch query
	Daemon       string `json:"daemon"`

	// Observability
	MetricsAddr string `json:"metrics_addr"` // empty = metrics server disabled
	Verbose     bool   `json:"verbose"`
	LogFormat   string `json:"log_format"` // json, text
	LogLevel    string `json:"log_level"`  // debug, info, warn, error

	// Dashboard
	TUIEnabled bool          `json:"tui"`
	TUIRefresh time.Duration `json:"tui_refresh"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Platform layout
		StatsRoot: "/var/hostsentry/stats",
		SocketDir: "/var/hostsentry/queue/sockets",
		KeysFile:  "/var/hostsentry/etc/client.keys",

		// Control socket
		SocketTimeout: 10 * time.Second,

		// Observability
		LogFormat: "json",
		LogLevel:  "info",

		// Dashboard
		TUIRefresh: 2 * time.Second,
	}
}
