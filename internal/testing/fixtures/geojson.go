// Package fixtures generates synthetic data files for tests.
package fixtures

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// FeatureSpec describes one synthetic GeoJSON feature.
type FeatureSpec struct {
	ID       string
	Date     string
	Name     string
	Location string
	Category string
	Amount   float64
	Lat      float64
	Lon      float64
	// NoGeometry emits a feature without coordinates.
	NoGeometry bool
}

// FeatureCollection renders the specs as a GeoJSON FeatureCollection
// document.
func FeatureCollection(specs ...FeatureSpec) []byte {
	type geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	type feature struct {
		Type       string                 `json:"type"`
		Geometry   geometry               `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	}

	features := make([]feature, 0, len(specs))
	for _, spec := range specs {
		props := map[string]interface{}{
			"fecha":        spec.Date,
			"obra":         spec.Name,
			"localizacion": spec.Location,
			"titular":      spec.Category,
			"importe":      spec.Amount,
		}
		if spec.ID != "" {
			props["id"] = spec.ID
		}
		f := feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: []float64{spec.Lon, spec.Lat}},
			Properties: props,
		}
		if spec.NoGeometry {
			f.Geometry = geometry{}
		}
		features = append(features, f)
	}

	doc := map[string]interface{}{
		"type":     "FeatureCollection",
		"features": features,
	}
	data, err := sonic.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("fixtures: marshal feature collection: %v", err))
	}
	return data
}

// ExecutionCSV renders "date;amount" rows under a header line.
func ExecutionCSV(rows ...string) []byte {
	lines := append([]string{"fecha;importe"}, rows...)
	return []byte(strings.Join(lines, "\n") + "\n")
}

// Boundary renders a minimal named GeoJSON boundary document with the given
// number of features.
func Boundary(name string, featureCount int) []byte {
	features := make([]map[string]interface{}, featureCount)
	for i := range features {
		features[i] = map[string]interface{}{"type": "Feature"}
	}
	doc := map[string]interface{}{
		"type":     "FeatureCollection",
		"name":     name,
		"features": features,
	}
	data, err := sonic.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("fixtures: marshal boundary: %v", err))
	}
	return data
}
