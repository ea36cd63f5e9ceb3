package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNames = `{
	"IT-34": "Veneto",
	"IT-34-BL-01": "Dolomiti Nord",
	"IT-34-BL-02": "Dolomiti Sud",
	"IT-32-TN": "Trentino",
	"IT-32-TN-01": "Adamello"
}`

// IT-34-BL-02 is split into two identical parts so a point inside it matches twice.
const testBoundaries = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"id": "IT-34-BL-01"}, "geometry": {"type": "Polygon",
			"coordinates": [[[11.8, 46.3], [11.95, 46.3], [11.95, 46.4], [11.8, 46.4], [11.8, 46.3]]]}},
		{"type": "Feature", "properties": {"id": "IT-34-BL-02"}, "geometry": {"type": "MultiPolygon",
			"coordinates": [
				[[[11.85, 46.35], [12.0, 46.35], [12.0, 46.45], [11.85, 46.45], [11.85, 46.35]]],
				[[[11.85, 46.35], [12.0, 46.35], [12.0, 46.45], [11.85, 46.45], [11.85, 46.35]]]
			]}}
	]
}`

func regionsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "micro-regions_names"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "micro-regions"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "micro-regions_names", "it.json"), []byte(testNames), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "micro-regions", "boundaries.json"), []byte(testBoundaries), 0o644))
	return dir
}

func feed(t *testing.T, path string) string {
	t.Helper()
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AINEVA_URL", "")
	t.Setenv("ARPAV_URL", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolve_PreservesDuplicates(t *testing.T) {
	out, err := run(t, "resolve", "11.9", "46.36", "--regions-dir", regionsDir(t))
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []string{"IT-34-BL-01", "IT-34-BL-02", "IT-34-BL-02"}, ids)
}

func TestResolve_Unique(t *testing.T) {
	out, err := run(t, "resolve", "11.9", "46.36", "--unique", "--regions-dir", regionsDir(t))
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []string{"IT-34-BL-01", "IT-34-BL-02"}, ids)
}

func TestResolve_NoMatchPrintsEmptyArray(t *testing.T) {
	out, err := run(t, "resolve", "0", "0", "--regions-dir", regionsDir(t))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestResolve_InvalidCoordinates(t *testing.T) {
	_, err := run(t, "resolve", "east", "46.36", "--regions-dir", regionsDir(t))
	require.Error(t, err)
}

func TestResolve_MissingRegionData(t *testing.T) {
	_, err := run(t, "resolve", "11.9", "46.36", "--regions-dir", t.TempDir())
	require.Error(t, err)
}

func TestTree_FullCatalog(t *testing.T) {
	out, err := run(t, "tree", "--regions-dir", regionsDir(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"IT-34": {
			"0": "Veneto",
			"regions": {"IT-34-BL-01": "Dolomiti Nord", "IT-34-BL-02": "Dolomiti Sud"},
			"name": "Veneto"
		},
		"IT-32-TN": {
			"0": "Trentino",
			"regions": {"IT-32-TN-01": "Adamello"},
			"name": "Trentino"
		}
	}`, out)
}

func TestTree_AvailableWithoutFeedIsEmpty(t *testing.T) {
	out, err := run(t, "tree", "--available", "--regions-dir", regionsDir(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestBulletin(t *testing.T) {
	url := feed(t, "../../internal/bulletin/testdata/caaml.xml")
	out, err := run(t, "bulletin", "IT-34-BL-01", "--regions-dir", regionsDir(t), "--aineva-url", url)
	require.NoError(t, err)

	var rec struct {
		RegionID   string `json:"region_id"`
		RegionName string `json:"region_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "IT-34-BL-01", rec.RegionID)
	assert.Equal(t, "Dolomiti Nord", rec.RegionName)
}

func TestBulletin_UnknownRegionPrintsEmptyObject(t *testing.T) {
	url := feed(t, "../../internal/bulletin/testdata/caaml.xml")
	out, err := run(t, "bulletin", "IT-99-XX-01", "--regions-dir", regionsDir(t), "--aineva-url", url)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestBulletin_RequiresFeedURL(t *testing.T) {
	_, err := run(t, "bulletin", "IT-34-BL-01", "--regions-dir", regionsDir(t))
	require.ErrorContains(t, err, "AINEVA_URL")
}

func TestAdvisory(t *testing.T) {
	url := feed(t, "../../internal/advisory/testdata/bollettino.xml")
	out, err := run(t, "advisory", "--regions-dir", regionsDir(t), "--arpav-url", url)
	require.NoError(t, err)

	var rec struct {
		Days    []json.RawMessage `json:"days"`
		Credits string            `json:"credits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Len(t, rec.Days, 2)
	assert.Contains(t, rec.Credits, "ARPAV")
}
