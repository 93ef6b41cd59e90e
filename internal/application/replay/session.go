package replay

import (
	"fmt"
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/core/playback"
	"github.com/penwyp/go-geo-replay/internal/core/timeline"
	"github.com/penwyp/go-geo-replay/internal/data/aggregator"
	"github.com/penwyp/go-geo-replay/internal/presentation/formatter"
	"github.com/shopspring/decimal"
)

// Session is one fully wired replay: timeline, totals, and controller over a
// loaded dataset.
type Session struct {
	Controller *playback.Controller
	Buckets    timeline.BucketSequence
	Records    []model.TimedRecord
	Totals     []decimal.Decimal
	Boundary   *model.BoundaryInfo
}

// NewSession builds the timeline and playback controller for the loaded
// data. The timeline is anchored at the configured start month and extends
// through the month of the newest record; datasets that end before the start
// month collapse to a single bucket.
func NewSession(cfg *Config, data *LoadedData, sink playback.StepSink) (*Session, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	start, err := cfg.StartTime(loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start_month %q: %w", cfg.StartMonth, err)
	}

	newest := time.Unix(data.Records.MaxTimestamp(), 0).In(loc)
	buckets := timeline.BuildMonthlyBuckets(start, newest)
	totals := aggregator.ComputeCumulative(data.Events.Events, buckets)

	ctrl, err := playback.NewController(data.Records.Records, buckets, totals, sink, cfg.Tick())
	if err != nil {
		return nil, err
	}

	return &Session{
		Controller: ctrl,
		Buckets:    buckets,
		Records:    data.Records.Records,
		Totals:     totals,
		Boundary:   data.Boundary,
	}, nil
}

// exportSink collects every step in order for batch export.
type exportSink struct {
	updates []model.StepUpdate
}

func (s *exportSink) OnStep(update model.StepUpdate) {
	s.updates = append(s.updates, update)
}

// ExportRows replays the whole timeline synchronously and flattens each step
// into a report row, with the category ranking recomputed over the visible
// set at that step.
func ExportRows(cfg *Config, data *LoadedData) ([]formatter.StepRow, error) {
	sink := &exportSink{}
	session, err := NewSession(cfg, data, sink)
	if err != nil {
		return nil, err
	}

	for i := 0; i < session.Controller.BucketCount(); i++ {
		session.Controller.Seek(i)
	}

	active := make(map[string]model.TimedRecord)
	rows := make([]formatter.StepRow, 0, len(sink.updates))
	for _, update := range sink.updates {
		for _, id := range update.Leaving {
			delete(active, id)
		}
		for _, rec := range update.EnteringRecords {
			active[rec.ID] = rec
		}

		visible := make([]model.TimedRecord, 0, len(active))
		for _, rec := range active {
			visible = append(visible, rec)
		}
		ranking := aggregator.TopCategories(visible, cfg.TopN)
		rankRows := make([]formatter.RankRow, 0, len(ranking))
		for _, r := range ranking {
			rankRows = append(rankRows, formatter.RankRow{Category: r.Category, Count: r.Count})
		}

		rows = append(rows, formatter.StepRow{
			Index:      update.Index,
			Bucket:     update.BucketLabel,
			Entering:   len(update.Entering),
			Leaving:    len(update.Leaving),
			Visible:    update.VisibleCount,
			Cumulative: update.CumulativeTotal,
			Ranking:    rankRows,
		})
	}
	return rows, nil
}
