package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	if state.Status != "" {
		line += " | " + state.Status
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the running totals line.
func renderSummary(state State, noColor bool) string {
	done := 0
	for _, row := range state.Rows {
		if row.Status == FileDone || row.Status == FileReadError {
			done++
		}
	}
	totals := state.Totals
	line := "Files: " + fmtInt(done) + "/" + fmtInt(len(state.Rows)) +
		" Matches: " + fmtInt(totals.Matches) +
		" Light: " + fmtInt(totals.Light) +
		" Fatal: " + fmtInt(totals.Fatal) +
		" Errors: " + fmtInt(totals.Errors)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
