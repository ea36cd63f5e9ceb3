package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveMicroRegions returns the ids of every feature that contains pt.
//
// A Polygon is tested on its outer ring only. For a MultiPolygon every ring
// of every part is tested and each match appends the id again, so the result
// can hold duplicates; callers wanting set semantics use Dedupe. Results keep
// corpus order.
func ResolveMicroRegions(pt Point, features []Feature, checkVertex bool) []string {
	var ids []string
	for _, f := range features {
		switch f.Type {
		case TypePolygon:
			if len(f.Polygons) == 0 || len(f.Polygons[0]) == 0 {
				continue
			}
			if Classify(pt, f.Polygons[0][0], checkVertex).Matches() {
				ids = append(ids, f.ID)
			}
		case TypeMultiPolygon:
			for _, poly := range f.Polygons {
				for _, ring := range poly {
					if Classify(pt, ring, checkVertex).Matches() {
						ids = append(ids, f.ID)
					}
				}
			}
		}
	}
	return ids
}

// Dedupe drops repeated ids, keeping the first occurrence.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ParsePoint parses caller-supplied longitude and latitude strings.
func ParsePoint(x, y string) (Point, error) {
	px, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return Point{}, fmt.Errorf("parse x %q: %w", x, err)
	}
	py, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return Point{}, fmt.Errorf("parse y %q: %w", y, err)
	}
	return Point{X: px, Y: py}, nil
}
