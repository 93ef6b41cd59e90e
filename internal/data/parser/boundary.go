package parser

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-geo-replay/internal/core/model"
)

// ParseBoundaryFile loads the basemap outline document. Only its metadata
// matters here; the geometry is consumed by the presentation layer as-is. A
// document that is not valid GeoJSON fails the whole ingestion.
func ParseBoundaryFile(path string) (*model.BoundaryInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary %s: %w", path, err)
	}
	return ParseBoundary(data)
}

// ParseBoundary validates a GeoJSON boundary document and extracts its
// metadata.
func ParseBoundary(data []byte) (*model.BoundaryInfo, error) {
	var doc struct {
		Type     string `json:"type"`
		Name     string `json:"name"`
		Features []struct {
			Type string `json:"type"`
		} `json:"features"`
	}
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode boundary: %w", err)
	}
	if doc.Type == "" {
		return nil, fmt.Errorf("boundary document has no GeoJSON type")
	}
	return &model.BoundaryInfo{Name: doc.Name, FeatureCount: len(doc.Features)}, nil
}
