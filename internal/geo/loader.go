package geo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

type featureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type geojsonFeature struct {
	Properties struct {
		ID string `json:"id"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// LoadCorpus reads every *.json file under fsys that holds a GeoJSON
// FeatureCollection, in lexical path order, and returns the Polygon and
// MultiPolygon features it contains. Other geometry types are ignored.
func LoadCorpus(fsys fs.FS) ([]Feature, error) {
	var features []Feature

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".json") {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if !bytes.Contains(data, []byte("FeatureCollection")) {
			return nil
		}

		parsed, err := DecodeFeatureCollection(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", p, err)
		}
		features = append(features, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return features, nil
}

// DecodeFeatureCollection decodes a GeoJSON FeatureCollection document. Only
// an unreadable document is an error: a feature whose properties or geometry
// header cannot be decoded is skipped, and a ring or polygon that is not a
// coordinate array is kept as a malformed ring.
func DecodeFeatureCollection(data []byte) ([]Feature, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, err
	}

	features := make([]Feature, 0, len(fc.Features))
	for _, raw := range fc.Features {
		var f geojsonFeature
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		switch GeometryType(f.Geometry.Type) {
		case TypePolygon:
			poly := decodePolygon(f.Geometry.Coordinates)
			features = append(features, Feature{ID: f.Properties.ID, Type: TypePolygon, Polygons: []Polygon{poly}})
		case TypeMultiPolygon:
			features = append(features, Feature{ID: f.Properties.ID, Type: TypeMultiPolygon, Polygons: decodeMultiPolygon(f.Geometry.Coordinates)})
		}
	}
	return features, nil
}

func decodeMultiPolygon(raw json.RawMessage) []Polygon {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return []Polygon{{MalformedRing()}}
	}
	polys := make([]Polygon, 0, len(parts))
	for _, part := range parts {
		polys = append(polys, decodePolygon(part))
	}
	return polys
}

func decodePolygon(raw json.RawMessage) Polygon {
	var rings []json.RawMessage
	if err := json.Unmarshal(raw, &rings); err != nil {
		return Polygon{MalformedRing()}
	}

	poly := make(Polygon, 0, len(rings))
	for _, ring := range rings {
		var vertices []json.RawMessage
		if err := json.Unmarshal(ring, &vertices); err != nil {
			poly = append(poly, MalformedRing())
			continue
		}
		poly = append(poly, decodeRing(vertices))
	}
	return poly
}

// decodeRing turns raw vertices into a Ring. A vertex that is not an array
// of at least two numbers makes the whole ring malformed.
func decodeRing(raw []json.RawMessage) Ring {
	vertices := make([]Point, 0, len(raw))
	for _, v := range raw {
		var pair []float64
		if err := json.Unmarshal(v, &pair); err != nil || len(pair) < 2 {
			return MalformedRing()
		}
		vertices = append(vertices, Point{X: pair[0], Y: pair[1]})
	}
	return NewRing(vertices)
}
