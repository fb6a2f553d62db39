package tui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const sheetTitle = "Q3_Forecast_FINAL_v3.xlsx"

var (
	sheetTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#217346")).Bold(true)
	sheetHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Background(lipgloss.Color("#E6E6E6"))
	sheetCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#222222")).Background(lipgloss.Color("#FFFFFF"))
)

var (
	sheetColumns = []string{"Region", "Owner", "Q1", "Q2", "Q3", "YoY %"}
	sheetRegions = []string{"North America", "EMEA", "APAC", "LATAM", "Nordics", "DACH", "Benelux", "ANZ", "Japan", "India"}
	sheetOwners  = []string{"J. Smith", "A. Chen", "M. Garcia", "K. Okafor", "L. Novak", "P. Singh"}
)

// buildSheet fills the spreadsheet shown while the workspace is hidden.
func buildSheet(rnd *rand.Rand) [][]string {
	rows := make([][]string, 0, len(sheetRegions)+1)
	var totals [3]int
	for _, region := range sheetRegions {
		row := []string{region, sheetOwners[rnd.Intn(len(sheetOwners))]}
		for q := 0; q < 3; q++ {
			v := 40000 + rnd.Intn(260000)
			totals[q] += v
			row = append(row, formatMoney(v))
		}
		row = append(row, fmt.Sprintf("%+.1f%%", rnd.Float64()*30-8))
		rows = append(rows, row)
	}
	total := []string{"Total", ""}
	for _, v := range totals {
		total = append(total, formatMoney(v))
	}
	return append(rows, append(total, ""))
}

func formatMoney(v int) string {
	s := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String()
}

func renderSheet(sheet [][]string, width, height int) string {
	widths := make([]int, len(sheetColumns))
	for i, col := range sheetColumns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range sheet {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	format := func(cells []string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i >= 2 {
				parts[i] = fmt.Sprintf("%*s", w, cell)
			} else {
				parts[i] = cell + strings.Repeat(" ", w-runewidth.StringWidth(cell))
			}
		}
		return " " + strings.Join(parts, " │ ") + " "
	}

	letters := make([]string, len(sheetColumns))
	for i := range letters {
		letters[i] = string(rune('A' + i))
	}
	lines := []string{
		sheetTitleStyle.Width(width).Render(fit(" "+sheetTitle+" - Excel", width)),
		sheetHeaderStyle.Width(width).Render(fit(format(letters), width)),
		sheetHeaderStyle.Width(width).Render(fit(format(sheetColumns), width)),
	}
	for _, row := range sheet {
		lines = append(lines, sheetCellStyle.Width(width).Render(fit(format(row), width)))
	}
	for len(lines) < height {
		lines = append(lines, sheetCellStyle.Width(width).Render(""))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
