package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-geo-replay/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w: w,
		headers: []string{
			"Bucket", "New", "Visible", "Cumulative", "Top Titular",
		},
	}
}

func (f *TableFormatter) Format(rows []StepRow) error {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Bucket,
			util.FormatCount(row.Entering),
			util.FormatCount(row.Visible),
			util.FormatEuroFull(row.Cumulative),
			rankingCell(row.Ranking),
		})
	}

	widths := f.calculateColumnWidths(cells)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range cells {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "bottom")

	return nil
}

// rankingCell joins a ranking as "ADIF (3), RENFE (1)".
func rankingCell(ranking []RankRow) string {
	parts := make([]string, 0, len(ranking))
	for _, r := range ranking {
		parts = append(parts, fmt.Sprintf("%s (%d)", r.Category, r.Count))
	}
	return strings.Join(parts, ", ")
}

// calculateColumnWidths sizes each column to its widest cell. Widths are
// measured with runewidth, not len: titular names carry accented runes.
func (f *TableFormatter) calculateColumnWidths(cells [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range cells {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Fprint(f.w, left)
	for i, width := range widths {
		fmt.Fprint(f.w, strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Fprint(f.w, middle)
		}
	}
	fmt.Fprintln(f.w, right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Fprint(f.w, "│")
	for i, value := range values {
		pad := widths[i] - runewidth.StringWidth(value)
		if i == 0 || i == len(values)-1 {
			// Bucket and ranking columns are left-aligned.
			fmt.Fprintf(f.w, " %s%s │", value, strings.Repeat(" ", pad))
		} else {
			fmt.Fprintf(f.w, " %s%s │", strings.Repeat(" ", pad), value)
		}
	}
	fmt.Fprintln(f.w)
}
