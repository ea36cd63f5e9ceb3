package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nvdata-service/internal/domain"
	"github.com/couchcryptid/nvdata-service/internal/normalize"
	"github.com/couchcryptid/nvdata-service/internal/observability"
	"github.com/couchcryptid/nvdata-service/internal/regions"
)

// Falcade lies in both Dolomiti micro-regions of the fixture corpus.
const (
	falcadeX = "11.872381"
	falcadeY = "46.358439"
)

const testNames = `{
	"IT-34": "Veneto",
	"IT-34-BL-01": "Dolomiti Nord",
	"IT-34-BL-02": "Dolomiti Sud",
	"IT-32-TN": "Trentino",
	"IT-32-TN-01": "Adamello",
	"IT-23-AO-01": "Monte Bianco"
}`

const testBoundaries = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"id": "IT-34-BL-01"}, "geometry": {"type": "Polygon",
			"coordinates": [[[11.8, 46.3], [11.95, 46.3], [11.95, 46.4], [11.8, 46.4]]]}},
		{"type": "Feature", "properties": {"id": "IT-34-BL-02"}, "geometry": {"type": "Polygon",
			"coordinates": [[[11.85, 46.35], [12.0, 46.35], [12.0, 46.45], [11.85, 46.45]]]}},
		{"type": "Feature", "properties": {"id": "IT-23-AO-01"}, "geometry": {"type": "Polygon",
			"coordinates": [[[7.0, 45.8], [7.2, 45.8], [7.2, 45.9], [7.0, 45.9]]]}}
	]
}`

type stubFetcher struct {
	body  []byte
	err   error
	calls atomic.Int32
}

func (f *stubFetcher) Fetch(context.Context) ([]byte, error) {
	f.calls.Add(1)
	return f.body, f.err
}

func readTestdata(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func testStore(t *testing.T) *regions.Store {
	t.Helper()
	fsys := fstest.MapFS{
		"micro-regions_names/it.json":   {Data: []byte(testNames)},
		"micro-regions/boundaries.json": {Data: []byte(testBoundaries)},
	}
	store := regions.NewStore(fsys, "it", clockwork.NewFakeClock(), discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, store.Load())
	return store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	svc    *Service
	aineva *stubFetcher
	arpav  *stubFetcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		aineva: &stubFetcher{body: readTestdata(t, "../bulletin/testdata/caaml.xml")},
		arpav:  &stubFetcher{body: readTestdata(t, "../advisory/testdata/bollettino.xml")},
	}
	f.svc = New(f.aineva, f.arpav, testStore(t), normalize.Compact{}, discardLogger(), observability.NewMetricsForTesting())
	return f
}

func (f *fixture) failUpstream() {
	f.aineva.body, f.aineva.err = nil, domain.ErrUpstreamUnavailable
	f.arpav.body, f.arpav.err = nil, domain.ErrUpstreamUnavailable
}
