package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	positiveStyle = cellStyle.Foreground(lipgloss.Color("#96CEB4"))
	negativeStyle = cellStyle.Foreground(lipgloss.Color("#FF6B6B"))

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
)

// renderTable draws rows under headers. Cells in signedCol are coloured by
// sign; pass -1 to disable.
func renderTable(headers []string, rows [][]string, signedCol int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == signedCol && len(rows[row][col]) > 0 && rows[row][col][0] == '-':
				return negativeStyle
			case col == signedCol && rows[row][col] != "0":
				return positiveStyle
			default:
				return cellStyle
			}
		}).
		String()
}
