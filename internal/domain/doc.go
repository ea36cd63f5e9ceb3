// Package domain models AINEVA avalanche bulletins and ARPAV advisories.
//
// # Data Sources
//
// AINEVA publishes the Italian avalanche bulletins as a single CAAML v5
// document (XML with GML identifiers and XLink references), available at
// https://bollettini.aineva.it/more/open-data. ARPAV publishes the Veneto
// mountain weather/avalanche advisory as a flat, Italian-tagged XML file at
// https://meteo.arpa.veneto.it. Both are fetched once per request; nothing is
// cached between requests.
//
// # CAAML Conventions
//
// Region cross-references:
//
//	<locRef xlink:href="IT-34-BL-01"/>
//	Each Bulletin lists every micro-region it covers as a locRef. One bulletin
//	can cover many micro-regions; the enclosing Bulletin carries a gml:id.
//
// Elevation ranges are encoded in an attribute, never in text:
//
//	<validElevation xlink:href="ElevationRange_2200Hi"/>
//	"2200Hi" means above 2200 m ("Hi" -> ">"), "1800Lo" below 1800 m.
//	Any suffix other than "Hi", including a missing one, is read as "below".
//	The elevation is kept as a string and may be empty. See [DecodeElevation].
//
// Aspects (slope orientations) follow the same pattern:
//
//	<validAspect xlink:href="AspectRange_NE"/>  ->  "NE"
//
// Danger ratings and avalanche problems carry a single visible text value
// (the rating, or the problem type), so the whole node text is the value.
//
// Danger patterns:
//
//	DP1 through DP10, the EAWS typical avalanche-formation scenarios. The
//	Italian descriptions are a static table, see [DangerPatternDescription].
//	An unknown code resolves to the entire table rather than an empty value.
//	Downstream clients have been built against this shape, so it is kept.
//
// # Region Identifiers
//
// Region ids are dash-segmented hierarchical codes, e.g. "IT-34-BL-01":
// country, region, province, micro-region. Every prefix may itself be a
// catalog entry ("IT-34" is Veneto), which is what the navigation tree is
// built from.
package domain
