package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	fileColumnMin = 16
	fixedColumns  = 12 + 10 + 8 + 8 + 8 + 8 + 10
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the columns used before the terminal size is known.
func defaultColumns() []table.Column {
	return columnsForWidth(0)
}

// columnsForWidth gives the file column whatever the fixed columns leave.
func columnsForWidth(width int) []table.Column {
	fileWidth := max(width-fixedColumns-8, fileColumnMin)
	if width <= 0 {
		fileWidth = 30
	}
	return []table.Column{
		{Title: "File", Width: fileWidth},
		{Title: "Status", Width: 12},
		{Title: "Progress", Width: 10},
		{Title: "Match", Width: 8},
		{Title: "Light", Width: 8},
		{Title: "Fatal", Width: 8},
		{Title: "Error", Width: 8},
		{Title: "Elapsed", Width: 10},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool, fileWidth int) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatFile(row.Path, fileWidth),
			formatStatus(row, noColor),
			formatProgress(row),
			fmtInt(row.Counters.Matches),
			fmtInt(row.Counters.Light),
			fmtInt(row.Counters.Fatal),
			fmtInt(row.Counters.Errors),
			formatRowDuration(row, now),
		})
	}
	return rows
}
