package replay

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/observability"
	"github.com/penwyp/go-geo-replay/internal/presentation/display"
	"github.com/penwyp/go-geo-replay/internal/util"
)

// donePollInterval is how often the run loop checks whether playback has
// reached the final bucket.
const donePollInterval = 200 * time.Millisecond

// reloadDebounce is how long the run loop waits for the input files to go
// quiet before reloading: one editor save can emit several Write/Create
// events, and each would otherwise restart the session.
const reloadDebounce = 200 * time.Millisecond

// Orchestrator runs a live replay end to end: ingest, play to the terminal,
// reload on input-file changes, expose metrics.
type Orchestrator struct {
	config  *Config
	metrics *observability.Metrics
	display *display.TerminalDisplay
	state   *StateManager
	session *Session
}

func NewOrchestrator(cfg *Config) *Orchestrator {
	return &Orchestrator{
		config:  cfg,
		metrics: observability.NewMetrics(),
		state:   NewStateManager(),
		display: display.NewTerminalDisplay(os.Stdout, display.Config{
			TopN:        cfg.TopN,
			Breakpoints: cfg.Breakpoints(),
		}),
	}
}

// Run plays the replay until it finishes, the context is cancelled, or setup
// fails. Input-file rewrites restart playback over the fresh data; a failed
// reload keeps the current session running.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.config.MetricsAddr != "" {
		o.serveMetrics(ctx)
	}

	if err := o.startSession(); err != nil {
		return err
	}

	watcher, err := NewFileWatcher(o.config.DataFile, o.config.ExecFile, o.config.BoundaryFile)
	if err != nil {
		return err
	}
	defer watcher.Close()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.session.Controller.Play()

	ticker := time.NewTicker(donePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.session.Controller.Pause()
			return nil

		case event := <-watcher.Events():
			util.LogInfof("Input changed (%s %s), reloading", event.Operation, event.Path)
			drainEvents(watcher.Events(), reloadDebounce)
			o.reload()

		case <-ticker.C:
			if o.session.Controller.AtEnd() && !o.session.Controller.IsPlaying() {
				return nil
			}
		}
	}
}

// startSession loads the inputs and swaps in a fresh session wired to the
// display, state manager, and metrics.
func (o *Orchestrator) startSession() error {
	o.state.SetLoading(true)
	defer o.state.SetLoading(false)

	data, err := LoadAll(o.config, o.metrics)
	if err != nil {
		return err
	}

	sink := NewFanoutSink(o.state, o.display, &metricsSink{metrics: o.metrics})
	session, err := NewSession(o.config, data, sink)
	if err != nil {
		return err
	}

	o.session = session
	o.metrics.BucketCount.Set(float64(len(session.Buckets)))
	o.display.SetBoundary(session.Boundary)
	o.display.SetBucketCount(len(session.Buckets))
	return nil
}

// reload rebuilds the session from the changed inputs. The old session keeps
// playing if the new data fails to ingest; the display's active set is only
// dropped once the new session is known-good, since the resumed old
// controller delivers deltas against the set it already realized.
func (o *Orchestrator) reload() {
	old := o.session
	old.Controller.Pause()

	if err := o.startSession(); err != nil {
		util.LogWarnf("Reload failed, keeping current session: %v", err)
		o.session = old
		old.Controller.Play()
		return
	}

	o.display.Reset()
	o.session.Controller.Play()
}

// drainEvents absorbs follow-up file events until none arrive for quiet.
func drainEvents(events <-chan model.FileEvent, quiet time.Duration) {
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case <-events:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(quiet)
		case <-timer.C:
			return
		}
	}
}

// serveMetrics exposes the Prometheus registry until the context ends.
func (o *Orchestrator) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", o.metrics.Handler())
	server := &http.Server{Addr: o.config.MetricsAddr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.LogWarnf("Metrics listener failed: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
