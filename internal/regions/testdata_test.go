package regions

import (
	"io"
	"log/slog"
	"testing/fstest"
)

const testNames = `{
	"IT-34": "Veneto",
	"IT-34-BL-01": "Dolomiti Nord",
	"IT-34-BL-02": "Dolomiti Sud",
	"IT-32-TN": "Trentino",
	"IT-32-TN-01": "Adamello",
	"IT-21": ""
}`

const testBoundaries = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"id": "IT-34-BL-01"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[11.8, 46.3], [11.95, 46.3], [11.95, 46.4], [11.8, 46.4]]]
			}
		}
	]
}`

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"micro-regions_names/it.json":                   {Data: []byte(testNames)},
		"micro-regions_names/de.json":                   {Data: []byte(`{"IT-34": "Venetien"}`)},
		"micro-regions/IT-34_micro-regions.geojson.json": {Data: []byte(testBoundaries)},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
