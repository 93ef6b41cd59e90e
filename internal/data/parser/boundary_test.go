package parser

import (
	"testing"

	"github.com/penwyp/go-geo-replay/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundary(t *testing.T) {
	info, err := ParseBoundary(fixtures.Boundary("provincia", 4))
	require.NoError(t, err)
	assert.Equal(t, "provincia", info.Name)
	assert.Equal(t, 4, info.FeatureCount)
}

func TestParseBoundaryRejectsNonGeoJSON(t *testing.T) {
	_, err := ParseBoundary([]byte(`{"name":"x"}`))
	assert.Error(t, err)

	_, err = ParseBoundary([]byte("{broken"))
	assert.Error(t, err)
}
