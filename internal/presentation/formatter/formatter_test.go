package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []StepRow {
	return []StepRow{
		{
			Index:      0,
			Bucket:     "June 2017",
			Entering:   2,
			Leaving:    0,
			Visible:    2,
			Cumulative: decimal.NewFromInt(100),
			Ranking:    []RankRow{{Category: "ADIF", Count: 2}},
		},
		{
			Index:      1,
			Bucket:     "July 2017",
			Entering:   1,
			Leaving:    0,
			Visible:    3,
			Cumulative: decimal.RequireFromString("150.50"),
			Ranking:    []RankRow{{Category: "ADIF", Count: 2}, {Category: "RENFE", Count: 1}},
		},
	}
}

func TestNewFormatterSelection(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []string{"table", "json", "csv", "summary"} {
		f, err := NewFormatter(format, &buf)
		require.NoError(t, err, format)
		assert.NotNil(t, f, format)
	}

	_, err := NewFormatter("xml", &buf)
	assert.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)

	require.NoError(t, f.Format(sampleRows()))
	out := buf.String()

	assert.Contains(t, out, "June 2017")
	assert.Contains(t, out, "July 2017")
	assert.Contains(t, out, "ADIF (2), RENFE (1)")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")

	// all border and data lines of a table share one display width
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Greater(t, len(lines), 3)
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	require.NoError(t, f.Format(sampleRows()))

	var decoded []StepRow
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "June 2017", decoded[0].Bucket)
	assert.True(t, decoded[1].Cumulative.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, "RENFE", decoded[1].Ranking[1].Category)
}

func TestJSONFormatterEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	require.NoError(t, f.Format(nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	require.NoError(t, f.Format(sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Bucket", "Entering", "Leaving", "Visible", "Cumulative", "Top Titular"}, records[0])
	assert.Equal(t, "June 2017", records[1][0])
	assert.Equal(t, "150.50", records[2][4])
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewSummaryFormatter(&buf)

	require.NoError(t, f.Format(sampleRows()))
	out := buf.String()

	assert.Contains(t, out, "Replay Summary Report")
	assert.Contains(t, out, "Period: June 2017 to July 2017")
	assert.Contains(t, out, "Peak visible:   3 (July 2017)")
	assert.Contains(t, out, "150,50 €")
	assert.Contains(t, out, "ADIF")
}

func TestSummaryFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewSummaryFormatter(&buf)

	require.NoError(t, f.Format(nil))
	assert.Contains(t, buf.String(), "No steps to summarize")
}
