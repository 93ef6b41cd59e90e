package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(rows []StepRow) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	headers := []string{"Bucket", "Entering", "Leaving", "Visible", "Cumulative", "Top Titular"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Bucket,
			strconv.Itoa(row.Entering),
			strconv.Itoa(row.Leaving),
			strconv.Itoa(row.Visible),
			row.Cumulative.StringFixed(2),
			rankingCell(row.Ranking),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}
