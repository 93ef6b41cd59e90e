package timeline

import "time"

// BucketSequence is the ordered set of month-aligned scrub positions. The
// instants are strictly increasing, one per calendar month, each normalized
// to the first day of its month at start-of-day.
type BucketSequence []time.Time

// BuildMonthlyBuckets produces one bucket per calendar month from min's
// month through max's month, inclusive. If max precedes min it is clamped to
// min, so the result always has at least one element. Stepping is
// calendar-based rather than a fixed 30-day interval, which keeps the
// sequence correct across differing month lengths and year boundaries.
func BuildMonthlyBuckets(min, max time.Time) BucketSequence {
	if max.Before(min) {
		max = min
	}

	loc := min.Location()
	cur := time.Date(min.Year(), min.Month(), 1, 0, 0, 0, 0, loc)
	end := time.Date(max.Year(), max.Month(), 1, 0, 0, 0, 0, loc)

	buckets := make(BucketSequence, 0, 12)
	for !cur.After(end) {
		buckets = append(buckets, cur)
		// time.Date normalizes month 13 into January of the next year.
		cur = time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, loc)
	}
	return buckets
}

// NextMonthStart returns the first instant of the month after t, in t's
// location. A bucket covers its whole calendar month, so this is the
// exclusive cutoff for everything the bucket contains.
func NextMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// LastIndex returns the index of the final bucket.
func (b BucketSequence) LastIndex() int {
	return len(b) - 1
}

// Clamp forces idx into the valid range [0, LastIndex].
func (b BucketSequence) Clamp(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > b.LastIndex() {
		return b.LastIndex()
	}
	return idx
}

// Label renders the human-readable month/year for the bucket at idx.
func (b BucketSequence) Label(idx int) string {
	return b[b.Clamp(idx)].Format("January 2006")
}
