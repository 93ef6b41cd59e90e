package parser

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/util"
)

// EventSeries is the outcome of execution-series ingestion: events sorted
// ascending by timestamp plus the count of dropped rows.
type EventSeries struct {
	Events   []model.SecondaryEvent
	Rejected int
}

// ParseExecutionFile reads and ingests the semicolon-delimited execution
// series.
func ParseExecutionFile(path string, loc *time.Location) (*EventSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read execution series %s: %w", path, err)
	}
	return ParseExecutionSeries(data, loc), nil
}

// ParseExecutionSeries ingests "date;amount" rows. The first row is a header
// and is skipped; blank rows are skipped; rows with an unparseable date or
// amount are dropped and counted, never fatal. Dates use the DD/MM/YYYY
// shape with an optional HH:mm suffix.
func ParseExecutionSeries(data []byte, loc *time.Location) *EventSeries {
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	series := &EventSeries{}
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, ";", 2)
		if len(fields) != 2 {
			series.Rejected++
			continue
		}

		ts, ok := ParseRecordDate(fields[0], loc)
		if !ok {
			series.Rejected++
			continue
		}
		amount, err := ParseEuroAmount(fields[1])
		if err != nil {
			series.Rejected++
			continue
		}

		series.Events = append(series.Events, model.SecondaryEvent{
			Timestamp: ts.Unix(),
			Amount:    amount,
		})
	}

	sort.SliceStable(series.Events, func(i, j int) bool {
		return series.Events[i].Timestamp < series.Events[j].Timestamp
	})

	if series.Rejected > 0 {
		util.LogWarnf("Dropped %d execution rows with unparseable dates or amounts", series.Rejected)
	}

	return series
}
