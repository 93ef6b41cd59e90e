package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/util"
	"github.com/shopspring/decimal"
)

// recordIDNamespace seeds the fallback IDs for features that ship without an
// id property. IDs derive from the record's position in date-sorted order,
// not arrival order, so two ingestions of the same dataset always assign the
// same identities and diffs stay reproducible.
var recordIDNamespace = uuid.MustParse("7f1cf32a-9c64-4f43-8ae5-6d1a0f2b9c01")

// geoGeometry defers coordinate decoding: non-Point geometries carry nested
// coordinate arrays, and decoding them eagerly as a flat pair would fail the
// whole document instead of dropping the one feature.
type geoGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// pointCoordinates extracts the [lon, lat] pair of a Point geometry. Anything
// else (absent geometry, nested arrays, short pairs) reports false.
func (g geoGeometry) pointCoordinates() (lon, lat float64, ok bool) {
	if len(g.Coordinates) == 0 {
		return 0, 0, false
	}
	var pair []float64
	if err := sonic.Unmarshal(g.Coordinates, &pair); err != nil || len(pair) < 2 {
		return 0, 0, false
	}
	return pair[0], pair[1], true
}

type geoFeature struct {
	Type       string                 `json:"type"`
	Geometry   geoGeometry            `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoFeatureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

// RecordSet is the outcome of record ingestion: the retained records sorted
// ascending by timestamp, plus the count of features dropped for unparseable
// dates or missing coordinates.
type RecordSet struct {
	Records  []model.TimedRecord
	Rejected int
}

// MaxTimestamp returns the largest record timestamp. Records are sorted, so
// this is the last element. Zero when the set is empty.
func (rs *RecordSet) MaxTimestamp() int64 {
	if len(rs.Records) == 0 {
		return 0
	}
	return rs.Records[len(rs.Records)-1].Timestamp
}

// ParseRecordFile reads and ingests a GeoJSON FeatureCollection of timed
// records.
func ParseRecordFile(path, dateProperty string, loc *time.Location) (*RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records %s: %w", path, err)
	}
	rs, err := ParseRecords(data, dateProperty, loc)
	if err != nil {
		return nil, fmt.Errorf("records %s: %w", path, err)
	}
	return rs, nil
}

// ParseRecords ingests a GeoJSON FeatureCollection. Features whose date
// property does not normalize, or whose geometry lacks a coordinate pair,
// are silently dropped and counted; a document that fails to decode at all
// is an error. Display attributes (name, location, category, magnitude) are
// carried through opaquely for the presentation layer.
func ParseRecords(data []byte, dateProperty string, loc *time.Location) (*RecordSet, error) {
	var fc geoFeatureCollection
	if err := sonic.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	type pending struct {
		record model.TimedRecord
		hasID  bool
	}
	kept := make([]pending, 0, len(fc.Features))
	rejected := 0

	for _, f := range fc.Features {
		raw, _ := stringProp(f.Properties, dateProperty)
		ts, ok := ParseRecordDate(raw, loc)
		if !ok {
			rejected++
			continue
		}
		lon, lat, ok := f.Geometry.pointCoordinates()
		if !ok {
			rejected++
			continue
		}

		rec := model.TimedRecord{
			Lon:       lon,
			Lat:       lat,
			Timestamp: ts.Unix(),
			Name:      firstStringProp(f.Properties, "obra"),
			Location:  firstStringProp(f.Properties, "localizacion", "MUNICIPIO"),
			Category:  firstStringProp(f.Properties, "titular", "TITULAR"),
			Magnitude: magnitudeProp(f.Properties, "importe"),
		}
		if id, ok := stringProp(f.Properties, "id"); ok && id != "" {
			rec.ID = id
		}
		kept = append(kept, pending{record: rec, hasID: rec.ID != ""})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].record.Timestamp < kept[j].record.Timestamp
	})

	records := make([]model.TimedRecord, 0, len(kept))
	for i, p := range kept {
		if !p.hasID {
			p.record.ID = uuid.NewSHA1(recordIDNamespace, []byte("record-"+strconv.Itoa(i))).String()
		}
		records = append(records, p.record)
	}

	if rejected > 0 {
		util.LogWarnf("Dropped %d features with unparseable dates or missing coordinates", rejected)
	}

	return &RecordSet{Records: records, Rejected: rejected}, nil
}

func stringProp(props map[string]interface{}, key string) (string, bool) {
	switch v := props[key].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

func firstStringProp(props map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := stringProp(props, key); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// magnitudeProp accepts both numeric and euro-formatted string magnitudes.
// Missing or malformed magnitudes degrade to zero rather than dropping the
// record: only the date is load-bearing for the engine.
func magnitudeProp(props map[string]interface{}, key string) decimal.Decimal {
	switch v := props[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if amount, err := ParseEuroAmount(v); err == nil {
			return amount
		}
	}
	return decimal.Zero
}
