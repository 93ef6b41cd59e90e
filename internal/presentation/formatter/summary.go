package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-geo-replay/internal/util"
	"github.com/shopspring/decimal"
)

// SummaryFormatter condenses a replay into a single closing report instead of
// the per-step view.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

func (f *SummaryFormatter) Format(rows []StepRow) error {
	fmt.Fprintln(f.w, strings.Repeat("=", 60))
	fmt.Fprintln(f.w, "Replay Summary Report")
	fmt.Fprintln(f.w, strings.Repeat("=", 60))
	fmt.Fprintln(f.w)

	if len(rows) == 0 {
		fmt.Fprintln(f.w, "No steps to summarize")
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, strings.Repeat("=", 60))
		return nil
	}

	first := rows[0]
	last := rows[len(rows)-1]
	if first.Bucket == last.Bucket {
		fmt.Fprintf(f.w, "Period: %s\n", first.Bucket)
	} else {
		fmt.Fprintf(f.w, "Period: %s to %s\n", first.Bucket, last.Bucket)
	}
	fmt.Fprintln(f.w)

	totalEntering := 0
	peakVisible := 0
	peakBucket := first.Bucket
	for _, row := range rows {
		totalEntering += row.Entering
		if row.Visible > peakVisible {
			peakVisible = row.Visible
			peakBucket = row.Bucket
		}
	}

	fmt.Fprintln(f.w, "Timeline:")
	fmt.Fprintf(f.w, "  Buckets:        %s\n", util.FormatCount(len(rows)))
	fmt.Fprintf(f.w, "  Records shown:  %s\n", util.FormatCount(totalEntering))
	fmt.Fprintf(f.w, "  Peak visible:   %s (%s)\n", util.FormatCount(peakVisible), peakBucket)
	fmt.Fprintln(f.w)

	fmt.Fprintln(f.w, "Execution:")
	fmt.Fprintf(f.w, "  Final total:    %s\n", util.FormatEuroFull(last.Cumulative))
	fmt.Fprintf(f.w, "  Monthly delta:  %s\n", util.FormatEuroFull(averageDelta(rows)))
	fmt.Fprintln(f.w)

	if len(last.Ranking) > 0 {
		fmt.Fprintln(f.w, "Final Ranking:")
		fmt.Fprintln(f.w, strings.Repeat("-", 60))
		for i, r := range last.Ranking {
			fmt.Fprintf(f.w, "  %2d. %-40s %s\n", i+1, r.Category, util.FormatCount(r.Count))
		}
		fmt.Fprintln(f.w)
	}

	fmt.Fprintln(f.w, strings.Repeat("=", 60))
	return nil
}

// averageDelta is the mean month-over-month growth of the cumulative total.
func averageDelta(rows []StepRow) decimal.Decimal {
	if len(rows) < 2 {
		return decimal.Zero
	}
	span := rows[len(rows)-1].Cumulative.Sub(rows[0].Cumulative)
	return span.Div(decimal.NewFromInt(int64(len(rows) - 1))).Round(2)
}
