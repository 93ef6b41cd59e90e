package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimedRecord is a geolocated entity pinned to a single instant on the
// timeline. Records are created during ingestion and never mutated; only
// their visibility toggles as the cursor moves. Every retained record has a
// valid timestamp: features with unparseable dates are dropped before they
// reach the engine.
type TimedRecord struct {
	ID        string          `json:"id"`
	Lat       float64         `json:"lat"`
	Lon       float64         `json:"lon"`
	Timestamp int64           `json:"timestamp"` // Unix timestamp
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Category  string          `json:"category"`
	Magnitude decimal.Decimal `json:"magnitude"`
}

// SecondaryEvent is one entry of the monetary execution series. Amounts are
// non-negative; rows that fail to parse are dropped at ingestion.
type SecondaryEvent struct {
	Timestamp int64           `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
}

// StepUpdate is the payload delivered to the presentation layer after each
// cursor transition. Entering and Leaving are sorted so a given pair of
// visibility snapshots always produces the same update.
type StepUpdate struct {
	Index           int
	BucketTime      time.Time
	BucketLabel     string
	CumulativeTotal decimal.Decimal
	Entering        []string
	Leaving         []string
	EnteringRecords []TimedRecord
	VisibleCount    int
}

// CategoryCount is one row of the top-N ranking chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// BoundaryInfo carries the metadata of the basemap outline. The geometry
// itself never reaches the engine; it is presentation plumbing.
type BoundaryInfo struct {
	Name         string
	FeatureCount int
}

// FileEvent describes a change to one of the watched data files.
type FileEvent struct {
	Path      string
	Operation string
}
