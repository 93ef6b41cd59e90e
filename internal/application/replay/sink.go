package replay

import (
	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/core/playback"
	"github.com/penwyp/go-geo-replay/internal/observability"
)

// FanoutSink delivers each step to every registered sink, in order.
type FanoutSink struct {
	sinks []playback.StepSink
}

func NewFanoutSink(sinks ...playback.StepSink) *FanoutSink {
	return &FanoutSink{sinks: sinks}
}

func (f *FanoutSink) OnStep(update model.StepUpdate) {
	for _, sink := range f.sinks {
		sink.OnStep(update)
	}
}

// metricsSink mirrors each step into the Prometheus collectors.
type metricsSink struct {
	metrics *observability.Metrics
}

func (s *metricsSink) OnStep(update model.StepUpdate) {
	s.metrics.StepsPlayed.Inc()
	s.metrics.CurrentBucket.Set(float64(update.Index))
	s.metrics.CumulativeTotal.Set(update.CumulativeTotal.InexactFloat64())
}
