package aggregator

import (
	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/core/timeline"
	"github.com/shopspring/decimal"
)

// ComputeCumulative folds a pre-sorted event series into one running total
// per bucket. A bucket absorbs every event dated in or before its calendar
// month. A single merge pass advances an event cursor alongside the bucket
// cursor, so each event is absorbed exactly once: O(events + buckets) total
// work, and since amounts are non-negative the totals never decrease. The
// output always has the same length as buckets; with no events every total
// is zero. Pure function over its inputs.
func ComputeCumulative(events []model.SecondaryEvent, buckets timeline.BucketSequence) []decimal.Decimal {
	totals := make([]decimal.Decimal, len(buckets))
	running := decimal.Zero
	next := 0

	for i, bucket := range buckets {
		// A bucket covers its whole calendar month.
		cutoff := timeline.NextMonthStart(bucket).Unix()
		for next < len(events) && events[next].Timestamp < cutoff {
			running = running.Add(events[next].Amount)
			next++
		}
		totals[i] = running
	}
	return totals
}
