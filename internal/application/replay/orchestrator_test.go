package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/observability"
	"github.com/penwyp/go-geo-replay/internal/presentation/display"
	"github.com/penwyp/go-geo-replay/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOrchestrator wires an orchestrator to an in-memory display so tests
// can inspect rendered frames.
func newTestOrchestrator(cfg *Config) (*Orchestrator, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Orchestrator{
		config:  cfg,
		metrics: observability.NewMetrics(),
		state:   NewStateManager(),
		display: display.NewTerminalDisplay(&buf, display.Config{
			TopN:        cfg.TopN,
			Breakpoints: cfg.Breakpoints(),
			Width:       72,
		}),
	}, &buf
}

func TestReloadSwapsInFreshSession(t *testing.T) {
	cfg := writeFixtureSet(t, t.TempDir())
	cfg.TickMS = 60_000 // keep auto-advance out of the test's way
	o, buf := newTestOrchestrator(cfg)
	require.NoError(t, o.startSession())

	o.session.Controller.Seek(o.session.Controller.BucketCount() - 1)
	old := o.session

	// rewrite the record file with one extra month of data
	extended := fixtures.FeatureCollection(
		fixtures.FeatureSpec{ID: "r1", Date: "2017-06-10", Name: "Obra A", Category: "Adif", Amount: 50_000, Lat: 41.6, Lon: -0.9},
		fixtures.FeatureSpec{ID: "r2", Date: "2017-08-20", Name: "Obra B", Category: "Renfe", Amount: 2_000_000, Lat: 40.4, Lon: -3.7},
		fixtures.FeatureSpec{ID: "r3", Date: "2017-09-05", Name: "Obra C", Category: "Seitt", Amount: 5_000, Lat: 39.5, Lon: -0.4},
	)
	require.NoError(t, os.WriteFile(cfg.DataFile, extended, 0o644))

	buf.Reset()
	o.reload()
	defer o.session.Controller.Pause()

	require.NotSame(t, old, o.session)
	assert.Len(t, o.session.Buckets, 4)
	assert.True(t, o.session.Controller.IsPlaying())

	// a fresh controller realizes bucket 0 on Play, before the first tick
	update, ok := o.state.Latest()
	require.True(t, ok)
	assert.Equal(t, 0, update.Index)

	// the active set was rebuilt from scratch: the first frame of the new
	// session shows June's record only, not August's leftover
	out := buf.String()
	assert.Contains(t, out, "ADIF")
	assert.NotContains(t, out, "RENFE")
}

func TestReloadKeepsSessionWhenIngestFails(t *testing.T) {
	cfg := writeFixtureSet(t, t.TempDir())
	cfg.TickMS = 60_000
	o, buf := newTestOrchestrator(cfg)
	require.NoError(t, o.startSession())

	last := o.session.Controller.BucketCount() - 1
	o.session.Controller.Seek(last)
	old := o.session

	cfg.DataFile = filepath.Join(t.TempDir(), "missing.geojson")
	buf.Reset()
	o.reload()
	defer o.session.Controller.Pause()

	assert.Same(t, old, o.session)
	assert.True(t, o.session.Controller.IsPlaying())

	// the display kept its active set: the resumed controller only delivers
	// deltas, so a wiped set could never repopulate tier counts or the
	// ranking for records realized before the failed reload
	o.session.Controller.Seek(last)
	out := buf.String()
	assert.Contains(t, out, "s=0  m=1  l=0  xl=1")
	assert.Contains(t, out, "ADIF")
	assert.Contains(t, out, "RENFE")
}

func TestDrainEventsAbsorbsBurst(t *testing.T) {
	events := make(chan model.FileEvent, 8)
	for i := 0; i < 5; i++ {
		events <- model.FileEvent{Path: "obras.geojson", Operation: "WRITE"}
	}

	drainEvents(events, 10*time.Millisecond)

	assert.Empty(t, events, "a burst of save events must coalesce into one reload")
}
