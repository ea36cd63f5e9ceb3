// Package normalize applies the final shaping to records before they are
// serialized for clients.
package normalize

import (
	"strings"

	"github.com/couchcryptid/nvdata-service/internal/domain"
)

// Normalizer post-processes extracted records.
type Normalizer interface {
	Bulletin(rec domain.BulletinRecord) domain.BulletinRecord
	Advisory(rec domain.AdvisoryRecord) domain.AdvisoryRecord
}

// Compact collapses whitespace in free text, removes repeated orientations
// and replaces nil slices with empty ones so they serialize as [].
type Compact struct{}

var _ Normalizer = Compact{}

// Bulletin normalizes a bulletin record. The zero record is returned unchanged.
func (Compact) Bulletin(rec domain.BulletinRecord) domain.BulletinRecord {
	if rec.IsZero() {
		return rec
	}

	rec.Highlight = collapse(rec.Highlight)
	rec.Description = collapse(rec.Description)
	rec.SnowDescription = collapse(rec.SnowDescription)
	rec.Tendency.Comment = collapse(rec.Tendency.Comment)

	rec.Locations = nonNil(rec.Locations)
	rec.Ratings = nonNil(rec.Ratings)
	rec.DangerPatterns = nonNil(rec.DangerPatterns)

	problems := make([]domain.Problem, len(rec.Problems))
	for i, p := range rec.Problems {
		p.Type = collapse(p.Type)
		p.Orientations = unique(p.Orientations)
		problems[i] = p
	}
	rec.Problems = problems
	return rec
}

// Advisory normalizes an advisory record.
func (Compact) Advisory(rec domain.AdvisoryRecord) domain.AdvisoryRecord {
	if rec.Intro != nil {
		intro := *rec.Intro
		intro.Situation = collapse(intro.Situation)
		intro.Forecast = collapse(intro.Forecast)
		intro.Guidance = collapse(intro.Guidance)
		intro.Forecaster = collapse(intro.Forecaster)
		rec.Intro = &intro
	}

	if rec.Days != nil {
		days := make([]domain.AdvisoryDay, len(rec.Days))
		for i, d := range rec.Days {
			areas := make([]domain.AdvisoryArea, len(d.Areas))
			for j, a := range d.Areas {
				a.DangerousPlaces = collapse(a.DangerousPlaces)
				a.AvalancheType = collapse(a.AvalancheType)
				a.DangerScope = collapse(a.DangerScope)
				areas[j] = a
			}
			d.Areas = areas
			days[i] = d
		}
		rec.Days = days
	}
	return rec
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func unique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
