package geo

import "math"

// Classification is where a point lies relative to a ring.
type Classification int

const (
	Outside Classification = iota
	Inside
	Boundary
	Vertex
)

func (c Classification) String() string {
	switch c {
	case Inside:
		return "inside"
	case Boundary:
		return "boundary"
	case Vertex:
		return "vertex"
	default:
		return "outside"
	}
}

// Matches reports whether the classification counts as a spatial match.
func (c Classification) Matches() bool {
	return c != Outside
}

// Classify locates pt against ring with the even-odd ray casting rule.
//
// Edges are walked from the second vertex on, pairing each vertex with its
// predecessor; the closing edge from the last vertex back to the first is not
// tested. GeoJSON rings repeat their first vertex at the end, so for the
// boundary corpus that edge is degenerate. Comparisons are exact.
func Classify(pt Point, ring Ring, checkVertex bool) Classification {
	if ring.Malformed {
		return Outside
	}
	if ring.hasBBox && outsideBBox(pt, ring.bbox) {
		return Outside
	}

	vertices := ring.Vertices
	if checkVertex && onVertex(pt, vertices) {
		return Vertex
	}

	intersections := 0
	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]

		// Point on a horizontal edge.
		if a.Y == b.Y && a.Y == pt.Y && pt.X > math.Min(a.X, b.X) && pt.X < math.Max(a.X, b.X) {
			return Boundary
		}

		if pt.Y > math.Min(a.Y, b.Y) && pt.Y <= math.Max(a.Y, b.Y) && pt.X <= math.Max(a.X, b.X) && a.Y != b.Y {
			xinters := (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) + a.X
			if xinters == pt.X {
				return Boundary
			}
			if a.X == b.X || pt.X <= xinters {
				intersections++
			}
		}
	}

	if intersections%2 != 0 {
		return Inside
	}
	return Outside
}

func onVertex(pt Point, vertices []Point) bool {
	for _, v := range vertices {
		if v == pt {
			return true
		}
	}
	return false
}

// outsideBBox prunes points that cannot touch any edge: below, above or to
// the right of the ring. Points to the left still go through the edge walk.
func outsideBBox(pt Point, b [4]float64) bool {
	return pt.Y < b[1] || pt.Y > b[3] || pt.X > b[2]
}
