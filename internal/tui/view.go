package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// maxBarWidth is the width of one hourly activity bar.
const maxBarWidth = 20

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.snapshot == nil {
		b.WriteString(mutedStyle.Render("Waiting for first refresh..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderDaemons())
	b.WriteString("\n")
	b.WriteString(m.renderActivity())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("hostsentry-stats")
	uptime := mutedStyle.Render(fmt.Sprintf("up %s", FormatDuration(m.Elapsed())))

	var rtt string
	if m.snapshot != nil && m.snapshot.RTTMax > 0 {
		rtt = mutedStyle.Render(fmt.Sprintf("socket p50 %s / max %s",
			formatRTT(m.snapshot.RTTP50), formatRTT(m.snapshot.RTTMax)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", uptime, "  ", rtt)
}

// renderDaemons renders one status line per monitored daemon.
func (m Model) renderDaemons() string {
	var lines []string
	lines = append(lines, subtitleStyle.Render("Daemons"))

	for _, d := range m.snapshot.Daemons {
		if d.Err != nil {
			lines = append(lines, fmt.Sprintf("%s %s  %s",
				statusError.Render("✗"),
				baseStyle.Render(d.Daemon),
				mutedStyle.Render(d.Err.Error()),
			))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			statusOK.Render("✓"),
			baseStyle.Render(d.Daemon),
			mutedStyle.Render(summarizeFields(d.Fields)),
		))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// renderActivity renders the hourly averages as horizontal bars.
func (m Model) renderActivity() string {
	var lines []string
	lines = append(lines, subtitleStyle.Render("Hourly activity"))

	peak := 0
	for _, v := range m.snapshot.Hourly.Averages {
		if v > peak {
			peak = v
		}
	}

	for hour, v := range m.snapshot.Hourly.Averages {
		width := 0
		if peak > 0 {
			width = v * maxBarWidth / peak
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			mutedStyle.Render(fmt.Sprintf("%02d", hour)),
			barStyle.Render(strings.Repeat("▇", width)),
			baseStyle.Render(FormatNumber(int64(v))),
		))
	}
	lines = append(lines, mutedStyle.Render(
		fmt.Sprintf("interactions: %s", FormatNumber(int64(m.snapshot.Hourly.Interactions)))))

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	age := time.Since(m.snapshot.Taken)
	stale := ""
	if age > 3*m.refresh {
		stale = statusWarn.Render(" (stale)")
	}
	return mutedStyle.Render(fmt.Sprintf("refreshed %s ago%s  •  q quit  r refresh",
		FormatDuration(age), stale))
}

// summarizeFields renders a daemon's state fields as "k=v" pairs in a
// stable order.
func summarizeFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

// FormatDuration formats a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatNumber formats a number in compact form (1.5K, 2.0M).
func FormatNumber(n int64) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func formatRTT(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
