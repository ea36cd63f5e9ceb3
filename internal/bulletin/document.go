// Package bulletin reads AINEVA CAAML documents and extracts per-region
// bulletin records.
//
// Elements are matched by local name so the document's default namespace and
// any gml/xlink prefixes do not matter. Text values are whitespace-normalized:
// trimmed, with every run of whitespace collapsed to a single space.
package bulletin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var (
	locRefExpr         = descendants("locRef")
	dangerRatingExpr   = descendants("DangerRating")
	dangerPatternExpr  = descendants("DangerPattern")
	avProblemExpr      = descendants("AvProblem")
	validElevationExpr = descendants("validElevation")
	validAspectExpr    = descendants("validAspect")

	reportTimeExpr      = descendants("dateTimeReport")
	startTimeExpr       = descendants("TimePeriod", "beginPosition")
	endTimeExpr         = descendants("TimePeriod", "endPosition")
	highlightExpr       = descendants("avActivityHighlights")
	descriptionExpr     = descendants("avActivityComment")
	snowDescriptionExpr = descendants("snowpackStructureComment")
	tendencyTypeExpr    = descendants("tendency", "type")
	tendencyFromExpr    = descendants("tendency", "beginPosition")
	tendencyToExpr      = descendants("tendency", "endPosition")
)

// descendants compiles a relative descendant path matching elements by local name.
func descendants(names ...string) *xpath.Expr {
	var b strings.Builder
	b.WriteString(".")
	for _, name := range names {
		fmt.Fprintf(&b, "//*[local-name()='%s']", name)
	}
	return xpath.MustCompile(b.String())
}

// Document is a parsed CAAML bulletin collection.
type Document struct {
	root *xmlquery.Node
}

// Parse parses a CAAML document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse caaml: %w", err)
	}
	return &Document{root: root}, nil
}

// Bulletin is a single Bulletin element of a document.
type Bulletin struct {
	node *xmlquery.Node
}

// ID returns the bulletin's gml:id, or "".
func (b *Bulletin) ID() string {
	return attr(b.node, "id")
}

// Index maps region ids to the bulletin that covers them.
type Index struct {
	byRegion map[string]*Bulletin
	order    []string
}

// Index walks every locRef in document order and maps its xlink:href to the
// nearest enclosing Bulletin. When a region is referenced more than once the
// last reference wins.
func (d *Document) Index() *Index {
	ix := &Index{byRegion: make(map[string]*Bulletin)}
	for _, ref := range xmlquery.QuerySelectorAll(d.root, locRefExpr) {
		id := attr(ref, "href")
		if id == "" {
			continue
		}
		node := closest(ref, "Bulletin")
		if node == nil {
			continue
		}
		if _, seen := ix.byRegion[id]; !seen {
			ix.order = append(ix.order, id)
		}
		ix.byRegion[id] = &Bulletin{node: node}
	}
	return ix
}

// Lookup returns the bulletin covering regionID.
func (ix *Index) Lookup(regionID string) (*Bulletin, bool) {
	b, ok := ix.byRegion[regionID]
	return b, ok
}

// Len returns the number of indexed regions.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Available returns, in first-reference order, the regions whose bulletin
// carries a non-empty gml:id.
func (ix *Index) Available() []string {
	out := make([]string, 0, len(ix.order))
	for _, id := range ix.order {
		if ix.byRegion[id].ID() != "" {
			out = append(out, id)
		}
	}
	return out
}

func closest(n *xmlquery.Node, name string) *xmlquery.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == xmlquery.ElementNode && cur.Data == name {
			return cur
		}
	}
	return nil
}

// attr returns the value of the first attribute with the given local name.
func attr(n *xmlquery.Node, local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func text(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(n.InnerText()), " ")
}

func (b *Bulletin) text(expr *xpath.Expr) string {
	return text(xmlquery.QuerySelector(b.node, expr))
}
