package display

import (
	"bytes"
	"testing"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisplay() (*TerminalDisplay, *bytes.Buffer) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf, Config{TopN: 3, Width: 72})
	return td, &buf
}

func stepWith(records []model.TimedRecord, leaving []string, label string, total int64, visible int) model.StepUpdate {
	entering := make([]string, 0, len(records))
	for _, r := range records {
		entering = append(entering, r.ID)
	}
	return model.StepUpdate{
		BucketLabel:     label,
		CumulativeTotal: decimal.NewFromInt(total),
		Entering:        entering,
		Leaving:         leaving,
		EnteringRecords: records,
		VisibleCount:    visible,
	}
}

func TestOnStepRendersFrame(t *testing.T) {
	td, buf := newTestDisplay()
	td.SetBoundary(&model.BoundaryInfo{Name: "provincia", FeatureCount: 1})
	td.SetBucketCount(14)

	td.OnStep(stepWith([]model.TimedRecord{
		{ID: "a", Category: "Adif", Magnitude: decimal.NewFromInt(2_000_000)},
		{ID: "b", Category: "Adif", Magnitude: decimal.NewFromInt(500)},
	}, nil, "June 2017", 1_500_000, 2))

	out := buf.String()
	assert.Contains(t, out, "provincia")
	assert.Contains(t, out, "June 2017")
	assert.Contains(t, out, "[1/14]")
	assert.Contains(t, out, "1.50 M€")
	assert.Contains(t, out, "s=1  m=0  l=0  xl=1")
	assert.Contains(t, out, "ADIF")
}

func TestActiveSetFollowsDiffs(t *testing.T) {
	td, buf := newTestDisplay()

	td.OnStep(stepWith([]model.TimedRecord{
		{ID: "a", Category: "Adif", Magnitude: decimal.NewFromInt(1)},
		{ID: "b", Category: "Renfe", Magnitude: decimal.NewFromInt(1)},
	}, nil, "June 2017", 100, 2))

	buf.Reset()
	td.OnStep(stepWith(nil, []string{"b"}, "July 2017", 100, 1))

	out := buf.String()
	assert.Contains(t, out, "ADIF")
	assert.NotContains(t, out, "RENFE")
	assert.Contains(t, out, "Visible:  1")
}

func TestResetDropsActiveSet(t *testing.T) {
	td, buf := newTestDisplay()

	td.OnStep(stepWith([]model.TimedRecord{
		{ID: "a", Category: "Adif", Magnitude: decimal.NewFromInt(1)},
	}, nil, "June 2017", 100, 1))
	td.Reset()

	buf.Reset()
	td.OnStep(stepWith(nil, nil, "June 2017", 100, 0))
	assert.NotContains(t, buf.String(), "ADIF")
}

func TestAlternateScreenToggleIsIdempotent(t *testing.T) {
	td, buf := newTestDisplay()

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\033[?1049h")))

	td.ExitAlternateScreen()
	td.ExitAlternateScreen()
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\033[?1049l")))
}
