package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nvdata-service/internal/domain"
)

func TestService_Region(t *testing.T) {
	f := newFixture(t)

	rec := f.svc.Region(context.Background(), "IT-34-BL-01")

	assert.Equal(t, "IT-34-BL-01", rec.RegionID)
	assert.Equal(t, "Dolomiti Nord", rec.RegionName)
	assert.Equal(t, []domain.Location{
		{ID: "IT-34-BL-01", Name: "Dolomiti Nord"},
		{ID: "IT-34-BL-02", Name: "Dolomiti Sud"},
	}, rec.Locations)
	require.Len(t, rec.Problems, 2)
	assert.Equal(t, []string{"N", "NE"}, rec.Problems[0].Orientations, "orientations are de-duplicated")
	assert.Equal(t, domain.AinevaCredits, rec.Credits)
	assert.Equal(t, int32(1), f.aineva.calls.Load())
}

func TestService_Region_Unknown(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.svc.Region(context.Background(), "IT-99-XX-01").IsZero())
}

func TestService_Region_UpstreamUnavailable(t *testing.T) {
	f := newFixture(t)
	f.failUpstream()
	assert.True(t, f.svc.Region(context.Background(), "IT-34-BL-01").IsZero())
}

func TestService_Region_MalformedFeed(t *testing.T) {
	f := newFixture(t)
	f.aineva.body = []byte(`<ObsCollection><Bulletin`)
	assert.True(t, f.svc.Region(context.Background(), "IT-34-BL-01").IsZero())
}

func TestService_Resolve(t *testing.T) {
	f := newFixture(t)

	ids, err := f.svc.Resolve(context.Background(), falcadeX, falcadeY)
	require.NoError(t, err)
	assert.Equal(t, []string{"IT-34-BL-01", "IT-34-BL-02"}, ids)

	_, err = f.svc.Resolve(context.Background(), "east", falcadeY)
	assert.Error(t, err)
}

func TestService_Coordinates(t *testing.T) {
	f := newFixture(t)

	records, matched := f.svc.Coordinates(context.Background(), falcadeX, falcadeY)

	require.True(t, matched)
	require.Len(t, records, 2)
	assert.Equal(t, "IT-34-BL-01", records[0].RegionID)
	assert.Equal(t, "IT-34-BL-02", records[1].RegionID)
	assert.Equal(t, int32(1), f.aineva.calls.Load(), "one fetch per query")
}

func TestService_Coordinates_NoRegion(t *testing.T) {
	f := newFixture(t)

	records, matched := f.svc.Coordinates(context.Background(), "0", "0")
	assert.False(t, matched)
	assert.Nil(t, records)
	assert.Zero(t, f.aineva.calls.Load(), "feed is not fetched when nothing matches")
}

func TestService_Coordinates_InvalidInput(t *testing.T) {
	f := newFixture(t)

	records, matched := f.svc.Coordinates(context.Background(), "abc", falcadeY)
	assert.False(t, matched)
	assert.Nil(t, records)
}

func TestService_Coordinates_RegionWithoutBulletin(t *testing.T) {
	f := newFixture(t)

	records, matched := f.svc.Coordinates(context.Background(), "7.1", "45.85")
	assert.True(t, matched)
	assert.Equal(t, []domain.BulletinRecord{}, records)
}

func TestService_Coordinates_UpstreamUnavailable(t *testing.T) {
	f := newFixture(t)
	f.failUpstream()

	records, matched := f.svc.Coordinates(context.Background(), falcadeX, falcadeY)
	assert.True(t, matched)
	assert.Empty(t, records)
}

func TestService_Navigation(t *testing.T) {
	f := newFixture(t)

	data, err := json.Marshal(f.svc.Navigation(context.Background()))
	require.NoError(t, err)

	assert.Equal(t,
		`{"IT-34":{"regions":{"IT-34-BL-01":"Dolomiti Nord","IT-34-BL-02":"Dolomiti Sud"},"name":"Veneto"},`+
			`"IT-32-TN":{"regions":{"IT-32-TN-01":"Adamello"},"name":"Trentino"}}`,
		string(data))
}

func TestService_Navigation_UpstreamUnavailable(t *testing.T) {
	f := newFixture(t)
	f.failUpstream()

	data, err := json.Marshal(f.svc.Navigation(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestService_Advisory(t *testing.T) {
	f := newFixture(t)

	rec := f.svc.Advisory(context.Background())
	require.NotNil(t, rec.Intro)
	assert.Equal(t, "M. Rossi", rec.Intro.Forecaster)
	assert.Len(t, rec.Days, 2)
	assert.Equal(t, domain.ArpavCredits, rec.Credits)
}

func TestService_Advisory_Failures(t *testing.T) {
	f := newFixture(t)
	f.failUpstream()
	assert.Equal(t, domain.AdvisoryRecord{Credits: domain.ArpavCredits}, f.svc.Advisory(context.Background()))

	f.arpav.body, f.arpav.err = []byte(`<bollettini><bollettino>`), nil
	assert.Equal(t, domain.AdvisoryRecord{Credits: domain.ArpavCredits}, f.svc.Advisory(context.Background()))
}

func TestService_Index(t *testing.T) {
	f := newFixture(t)

	data, err := json.Marshal(f.svc.Index(context.Background()))
	require.NoError(t, err)

	assert.Equal(t,
		`{"ARPAV":{"ARPAV":"/arpav"},"AINEVA":{"Dolomiti Nord":"/aineva/IT-34-BL-01",`+
			`"Dolomiti Sud":"/aineva/IT-34-BL-02","Adamello":"/aineva/IT-32-TN-01"}}`,
		string(data))
}

func TestService_Index_UpstreamUnavailable(t *testing.T) {
	f := newFixture(t)
	f.failUpstream()

	data, err := json.Marshal(f.svc.Index(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, `{"ARPAV":{"ARPAV":"/arpav"}}`, string(data))
}

func TestService_Snapshot(t *testing.T) {
	f := newFixture(t)

	records, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.RegionID
	}
	assert.Equal(t, []string{"IT-34-BL-01", "IT-34-BL-02", "IT-32-TN-01"}, ids)
}

func TestService_Snapshot_UpstreamUnavailable(t *testing.T) {
	f := newFixture(t)
	f.failUpstream()

	_, err := f.svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
