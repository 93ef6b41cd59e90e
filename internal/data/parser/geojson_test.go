package parser

import (
	"testing"
	"time"

	"github.com/penwyp/go-geo-replay/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords(t *testing.T) {
	data := fixtures.FeatureCollection(
		fixtures.FeatureSpec{ID: "r2", Date: "2017-08-01", Name: "Obra B", Category: "Renfe", Amount: 25000, Lat: 40.4, Lon: -3.7},
		fixtures.FeatureSpec{ID: "r1", Date: "10/06/2017", Name: "Obra A", Location: "Madrid", Category: "Adif", Amount: 1500000, Lat: 41.6, Lon: -0.9},
	)

	rs, err := ParseRecords(data, "fecha", time.UTC)
	require.NoError(t, err)
	require.Len(t, rs.Records, 2)
	assert.Zero(t, rs.Rejected)

	// sorted ascending by timestamp regardless of document order
	assert.Equal(t, "r1", rs.Records[0].ID)
	assert.Equal(t, "r2", rs.Records[1].ID)
	assert.True(t, rs.Records[0].Timestamp < rs.Records[1].Timestamp)

	first := rs.Records[0]
	assert.Equal(t, "Obra A", first.Name)
	assert.Equal(t, "Madrid", first.Location)
	assert.Equal(t, "Adif", first.Category)
	assert.Equal(t, 41.6, first.Lat)
	assert.Equal(t, -0.9, first.Lon)
	assert.Equal(t, "1500000", first.Magnitude.String())

	assert.Equal(t, rs.Records[1].Timestamp, rs.MaxTimestamp())
}

func TestParseRecordsDropsInvalidFeatures(t *testing.T) {
	data := fixtures.FeatureCollection(
		fixtures.FeatureSpec{ID: "ok", Date: "2017-06-10", Lat: 40, Lon: -3},
		fixtures.FeatureSpec{ID: "bad-date", Date: "not-a-date", Lat: 40, Lon: -3},
		fixtures.FeatureSpec{ID: "no-date", Lat: 40, Lon: -3},
		fixtures.FeatureSpec{ID: "no-geom", Date: "2017-06-11", NoGeometry: true},
	)

	rs, err := ParseRecords(data, "fecha", time.UTC)
	require.NoError(t, err)
	require.Len(t, rs.Records, 1)
	assert.Equal(t, "ok", rs.Records[0].ID)
	assert.Equal(t, 3, rs.Rejected)
}

// A stray non-Point geometry carries nested coordinate arrays; it must be
// dropped and counted like any other bad feature, not abort the document.
func TestParseRecordsDropsNonPointGeometry(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [-0.9, 41.6]},
				"properties": {"id": "point", "fecha": "2017-06-10"}
			},
			{
				"type": "Feature",
				"geometry": {"type": "LineString", "coordinates": [[-0.9, 41.6], [-1.0, 41.7]]},
				"properties": {"id": "line", "fecha": "2017-06-11"}
			},
			{
				"type": "Feature",
				"geometry": {"type": "Polygon", "coordinates": [[[-0.9, 41.6], [-1.0, 41.7], [-0.9, 41.8], [-0.9, 41.6]]]},
				"properties": {"id": "poly", "fecha": "2017-06-12"}
			}
		]
	}`)

	rs, err := ParseRecords(data, "fecha", time.UTC)
	require.NoError(t, err)
	require.Len(t, rs.Records, 1)
	assert.Equal(t, "point", rs.Records[0].ID)
	assert.Equal(t, -0.9, rs.Records[0].Lon)
	assert.Equal(t, 41.6, rs.Records[0].Lat)
	assert.Equal(t, 2, rs.Rejected)
}

func TestParseRecordsFallbackIDsAreDeterministic(t *testing.T) {
	data := fixtures.FeatureCollection(
		fixtures.FeatureSpec{Date: "2017-07-01", Lat: 40, Lon: -3},
		fixtures.FeatureSpec{Date: "2017-06-01", Lat: 40, Lon: -3},
	)

	first, err := ParseRecords(data, "fecha", time.UTC)
	require.NoError(t, err)
	second, err := ParseRecords(data, "fecha", time.UTC)
	require.NoError(t, err)

	require.Len(t, first.Records, 2)
	for i := range first.Records {
		assert.NotEmpty(t, first.Records[i].ID)
		assert.Equal(t, first.Records[i].ID, second.Records[i].ID,
			"fallback IDs must be stable across ingestions")
	}
	assert.NotEqual(t, first.Records[0].ID, first.Records[1].ID)
}

func TestParseRecordsRejectsMalformedDocument(t *testing.T) {
	_, err := ParseRecords([]byte("{not json"), "fecha", time.UTC)
	assert.Error(t, err)
}

func TestParseRecordsEmptyCollection(t *testing.T) {
	rs, err := ParseRecords(fixtures.FeatureCollection(), "fecha", time.UTC)
	require.NoError(t, err)
	assert.Empty(t, rs.Records)
	assert.Zero(t, rs.MaxTimestamp())
}
