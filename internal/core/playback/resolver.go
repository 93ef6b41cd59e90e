package playback

import (
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/core/timeline"
)

// ResolveVisible computes the identity set of records dated in or before the
// cursor's month: a bucket covers its whole calendar month, so a record from
// any day of that month is visible once the cursor reaches it. Pure filter
// with no ordering assumption on records; records older than the first
// bucket coalesce into it through the same comparison.
func ResolveVisible(records []model.TimedRecord, cursor time.Time) map[string]struct{} {
	cutoff := timeline.NextMonthStart(cursor).Unix()
	visible := make(map[string]struct{})
	for _, r := range records {
		if r.Timestamp < cutoff {
			visible[r.ID] = struct{}{}
		}
	}
	return visible
}
