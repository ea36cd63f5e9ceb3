package bulletin

import (
	"github.com/antchfx/xmlquery"

	"github.com/couchcryptid/nvdata-service/internal/domain"
)

// RegionNamer resolves a region id to its display name.
type RegionNamer interface {
	RegionName(id string) string
}

// Extract builds the record for regionID from the bulletin that covers it.
func Extract(b *Bulletin, regionID string, names RegionNamer) domain.BulletinRecord {
	return domain.BulletinRecord{
		RegionID:        regionID,
		RegionName:      names.RegionName(regionID),
		ReportTime:      b.text(reportTimeExpr),
		StartTime:       b.text(startTimeExpr),
		EndTime:         b.text(endTimeExpr),
		Locations:       b.locations(names),
		Ratings:         b.ratings(),
		DangerPatterns:  b.dangerPatterns(),
		Problems:        b.problems(),
		Highlight:       b.text(highlightExpr),
		Description:     b.text(descriptionExpr),
		SnowDescription: b.text(snowDescriptionExpr),
		Tendency: domain.Tendency{
			Type:    b.text(tendencyTypeExpr),
			From:    b.text(tendencyFromExpr),
			To:      b.text(tendencyToExpr),
			Comment: b.text(snowDescriptionExpr),
		},
		Credits: domain.AinevaCredits,
	}
}

func (b *Bulletin) locations(names RegionNamer) []domain.Location {
	out := []domain.Location{}
	for _, ref := range xmlquery.QuerySelectorAll(b.node, locRefExpr) {
		id := attr(ref, "href")
		if id == "" {
			continue
		}
		out = append(out, domain.Location{ID: id, Name: names.RegionName(id)})
	}
	return out
}

func (b *Bulletin) ratings() []domain.Rating {
	out := []domain.Rating{}
	for _, n := range xmlquery.QuerySelectorAll(b.node, dangerRatingExpr) {
		elev := elevationOf(n)
		out = append(out, domain.Rating{
			Elevation: elev.Elevation,
			Direction: elev.Direction,
			Value:     text(n),
		})
	}
	return out
}

func (b *Bulletin) dangerPatterns() []domain.DangerPatternEntry {
	out := []domain.DangerPatternEntry{}
	for _, n := range xmlquery.QuerySelectorAll(b.node, dangerPatternExpr) {
		code := text(n)
		if code == "" {
			continue
		}
		out = append(out, domain.DangerPatternEntry{
			Code:        code,
			Description: domain.DangerPatternDescription(code),
		})
	}
	return out
}

func (b *Bulletin) problems() []domain.Problem {
	out := []domain.Problem{}
	for _, n := range xmlquery.QuerySelectorAll(b.node, avProblemExpr) {
		orientations := []string{}
		for _, aspect := range xmlquery.QuerySelectorAll(n, validAspectExpr) {
			orientations = append(orientations, domain.DecodeAspect(attr(aspect, "href")))
		}
		elev := elevationOf(n)
		out = append(out, domain.Problem{
			Type:         text(n),
			Orientations: orientations,
			Elevation:    elev.Elevation,
			Direction:    elev.Direction,
		})
	}
	return out
}

// elevationOf decodes the first validElevation reference beneath n.
func elevationOf(n *xmlquery.Node) domain.Elevation {
	return domain.DecodeElevation(attr(xmlquery.QuerySelector(n, validElevationExpr), "href"))
}
