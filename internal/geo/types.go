// Package geo resolves coordinates to micro-regions by point-in-polygon tests
// over the EAWS micro-region boundary corpus.
package geo

import "math"

// Point is a longitude (X) / latitude (Y) pair.
type Point struct {
	X float64
	Y float64
}

// Ring is an ordered sequence of vertices. A ring that contained a vertex
// which was not a coordinate pair is kept but marked malformed, and never
// matches.
type Ring struct {
	Vertices  []Point
	Malformed bool

	bbox    [4]float64 // minX, minY, maxX, maxY
	hasBBox bool
}

// NewRing builds a ring and precomputes its bounding box.
func NewRing(vertices []Point) Ring {
	r := Ring{Vertices: vertices, hasBBox: true}
	r.bbox = [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, v := range vertices {
		r.bbox[0] = math.Min(r.bbox[0], v.X)
		r.bbox[1] = math.Min(r.bbox[1], v.Y)
		r.bbox[2] = math.Max(r.bbox[2], v.X)
		r.bbox[3] = math.Max(r.bbox[3], v.Y)
	}
	return r
}

// MalformedRing returns a ring that classifies every point as outside.
func MalformedRing() Ring {
	return Ring{Malformed: true}
}

// Polygon is a GeoJSON polygon: the first ring is the outer ring, the rest are holes.
type Polygon []Ring

// GeometryType is the GeoJSON geometry type of a feature.
type GeometryType string

const (
	TypePolygon      GeometryType = "Polygon"
	TypeMultiPolygon GeometryType = "MultiPolygon"
)

// Feature is a named micro-region boundary.
type Feature struct {
	ID       string
	Type     GeometryType
	Polygons []Polygon // exactly one for TypePolygon
}
