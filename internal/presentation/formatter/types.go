package formatter

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// StepRow is one playback step flattened for report output.
type StepRow struct {
	Index      int             `json:"index"`
	Bucket     string          `json:"bucket"`
	Entering   int             `json:"entering"`
	Leaving    int             `json:"leaving"`
	Visible    int             `json:"visible"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Ranking    []RankRow       `json:"ranking,omitempty"`
}

// RankRow is one entry of a step's category ranking.
type RankRow struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Formatter renders a replay export in one output format.
type Formatter interface {
	Format(rows []StepRow) error
}

// NewFormatter selects a formatter by name.
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
