package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/core/timeline"
	"github.com/shopspring/decimal"
)

// DefaultTickInterval is the auto-advance cadence used when none is
// configured.
const DefaultTickInterval = 500 * time.Millisecond

// StepSink receives one update per cursor transition. OnStep runs inside the
// controller's transition cycle and must not call back into the controller.
type StepSink interface {
	OnStep(update model.StepUpdate)
}

type noopSink struct{}

func (noopSink) OnStep(model.StepUpdate) {}

// Controller owns the playback cursor. It advances on a fixed cadence while
// playing, or jumps on Seek, and runs one resolve/diff/total cycle per
// transition. A mutex serializes cycles, so the stored previous-visible-set
// never sees two transitions interleaved and re-entrant seeks queue up
// instead of racing.
//
// Each Controller is a self-contained session: all cursor state lives on the
// struct, so independent sessions can run side by side.
type Controller struct {
	mu sync.Mutex

	records  []model.TimedRecord
	buckets  timeline.BucketSequence
	totals   []decimal.Decimal
	sink     StepSink
	interval time.Duration

	index      int
	playing    bool
	interacted bool
	visible    map[string]struct{}
	stop       chan struct{}
}

// NewController builds a controller over an ingested record set, its bucket
// sequence, and the precomputed per-bucket cumulative totals. The cursor
// starts paused at bucket 0 with nothing realized; nothing is emitted until
// the first Seek or Play.
func NewController(records []model.TimedRecord, buckets timeline.BucketSequence, totals []decimal.Decimal, sink StepSink, interval time.Duration) (*Controller, error) {
	if len(buckets) == 0 {
		return nil, errors.New("playback: bucket sequence is empty")
	}
	if len(totals) != len(buckets) {
		return nil, fmt.Errorf("playback: %d totals for %d buckets", len(totals), len(buckets))
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if sink == nil {
		sink = noopSink{}
	}
	return &Controller{
		records:  records,
		buckets:  buckets,
		totals:   totals,
		sink:     sink,
		interval: interval,
		visible:  make(map[string]struct{}),
	}, nil
}

// Seek moves the cursor to idx and realizes the step. Out-of-range indices
// are clamped, never an error. Valid whether paused or playing.
func (c *Controller) Seek(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interacted = true
	c.step(c.buckets.Clamp(idx))
}

// Play transitions Paused to Playing and schedules auto-advance ticks. On
// the very first interaction of the session the current (otherwise
// suppressed) visible set is realized immediately, before the first tick.
// A no-op when already playing.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	if !c.interacted {
		c.interacted = true
		c.step(c.index)
	}
	c.playing = true
	c.stop = make(chan struct{})
	go c.run(c.stop)
}

// Pause transitions Playing to Paused and cancels the pending tick: once it
// returns, no further auto-advance fires even if a tick was already due.
// Idempotent when already paused.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *Controller) pauseLocked() {
	if !c.playing {
		return
	}
	c.playing = false
	close(c.stop)
	c.stop = nil
}

// run is the auto-advance loop for one Playing episode.
func (c *Controller) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.advance() {
				return
			}
		}
	}
}

// advance performs one auto-play tick. It reports false once playback has
// stopped, either through Pause or by reaching the final bucket.
func (c *Controller) advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		// Pause won the race against a tick that was already due.
		return false
	}
	if c.index >= c.buckets.LastIndex() {
		// Auto-stop at the end, no wraparound.
		c.pauseLocked()
		return false
	}
	c.step(c.index + 1)
	return true
}

// step realizes bucket idx: resolve visibility, diff against the previous
// snapshot, look up the precomputed total, and hand the update to the sink.
// Caller holds c.mu.
func (c *Controller) step(idx int) {
	c.index = idx
	bucket := c.buckets[idx]
	current := ResolveVisible(c.records, bucket)
	entering, leaving := Diff(c.visible, current)

	var snapshot []model.TimedRecord
	if len(entering) > 0 {
		want := make(map[string]struct{}, len(entering))
		for _, id := range entering {
			want[id] = struct{}{}
		}
		for _, r := range c.records {
			if _, ok := want[r.ID]; ok {
				snapshot = append(snapshot, r)
			}
		}
	}

	c.visible = current
	c.sink.OnStep(model.StepUpdate{
		Index:           idx,
		BucketTime:      bucket,
		BucketLabel:     c.buckets.Label(idx),
		CumulativeTotal: c.totals[idx],
		Entering:        entering,
		Leaving:         leaving,
		EnteringRecords: snapshot,
		VisibleCount:    len(current),
	})
}

// CurrentIndex returns the cursor's bucket index.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// BucketCount returns the number of scrub positions, for slider binding.
func (c *Controller) BucketCount() int {
	return len(c.buckets)
}

// CurrentBucketLabel returns the human-readable month/year of the active
// bucket.
func (c *Controller) CurrentBucketLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buckets.Label(c.index)
}

// IsPlaying reports whether auto-advance is active.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// AtEnd reports whether the cursor sits on the final bucket.
func (c *Controller) AtEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index >= c.buckets.LastIndex()
}
