package live

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatFile renders the base name of a file, truncated to limit cells.
func formatFile(path string, limit int) string {
	name := filepath.Base(path)
	if limit <= 0 || runewidth.StringWidth(name) <= limit {
		return name
	}
	return runewidth.Truncate(name, limit, "...")
}

// formatProgress renders done/total sentences.
func formatProgress(row FileRow) string {
	if row.Status == FileQueued || row.Status == FileReadError {
		return "-"
	}
	return fmtInt(row.Done) + "/" + fmtInt(row.Sentences)
}

// formatRowDuration renders how long a file has been (or was) processed.
func formatRowDuration(row FileRow, now time.Time) string {
	if row.StartedAt.IsZero() {
		return ""
	}
	end := now
	if !row.FinishedAt.IsZero() {
		end = row.FinishedAt
	}
	return formatDuration(end.Sub(row.StartedAt))
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// formatStatus renders a status string for a row.
func formatStatus(row FileRow, noColor bool) string {
	text := string(row.Status)
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// statusStyle maps a file status to a color.
func statusStyle(status FileStatus) lipgloss.Style {
	switch status {
	case FileRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	case FileDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	case FileReadError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	}
}
