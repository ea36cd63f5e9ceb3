// Package service answers API queries: it fetches the upstream feeds, resolves
// regions and extracts normalized records. Every failure degrades to an empty
// result; callers never see upstream errors.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/couchcryptid/nvdata-service/internal/advisory"
	"github.com/couchcryptid/nvdata-service/internal/bulletin"
	"github.com/couchcryptid/nvdata-service/internal/domain"
	"github.com/couchcryptid/nvdata-service/internal/geo"
	"github.com/couchcryptid/nvdata-service/internal/normalize"
	"github.com/couchcryptid/nvdata-service/internal/observability"
	"github.com/couchcryptid/nvdata-service/internal/regions"
)

// Fetcher downloads an upstream feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// RegionSource provides the current region catalog and boundary corpus.
type RegionSource interface {
	Catalog() *regions.Catalog
	Features() []geo.Feature
}

// Service orchestrates fetch, parse, resolve, extract and normalize.
type Service struct {
	aineva     Fetcher
	arpav      Fetcher
	regions    RegionSource
	normalizer normalize.Normalizer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Service.
func New(aineva, arpav Fetcher, regions RegionSource, normalizer normalize.Normalizer, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		aineva:     aineva,
		arpav:      arpav,
		regions:    regions,
		normalizer: normalizer,
		logger:     logger,
		metrics:    metrics,
	}
}

// bulletins fetches and indexes the current CAAML document.
func (s *Service) bulletins(ctx context.Context) (*bulletin.Index, error) {
	data, err := s.aineva.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := bulletin.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return doc.Index(), nil
}

// extract returns the normalized record for regionID, or domain.ErrUnknownRegion.
func (s *Service) extract(ix *bulletin.Index, regionID string, catalog *regions.Catalog) (domain.BulletinRecord, error) {
	b, ok := ix.Lookup(regionID)
	if !ok {
		return domain.BulletinRecord{}, fmt.Errorf("%w: %s", domain.ErrUnknownRegion, regionID)
	}
	return s.normalizer.Bulletin(bulletin.Extract(b, regionID, catalog)), nil
}

// Region returns the bulletin record for regionID, or the zero record when
// the feed is unavailable or no bulletin covers the region.
func (s *Service) Region(ctx context.Context, regionID string) domain.BulletinRecord {
	ctx, span := observability.StartSpan(ctx, "service.region", attribute.String("region.id", regionID))
	defer span.End()

	ix, err := s.bulletins(ctx)
	if err != nil {
		s.logger.Error("bulletin feed unavailable", "region", regionID, "error", err)
		return domain.BulletinRecord{}
	}

	rec, err := s.extract(ix, regionID, s.regions.Catalog())
	if err != nil {
		s.logger.Debug("no bulletin for region", "region", regionID)
		return domain.BulletinRecord{}
	}
	return rec
}

// Resolve returns the micro-regions containing the point (x, y), in corpus
// order and with duplicates preserved.
func (s *Service) Resolve(ctx context.Context, x, y string) ([]string, error) {
	_, span := observability.StartSpan(ctx, "service.resolve")
	defer span.End()

	pt, err := geo.ParsePoint(x, y)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ids := geo.ResolveMicroRegions(pt, s.regions.Features(), true)
	s.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	s.metrics.ResolvedRegions.Observe(float64(len(ids)))

	span.SetAttributes(attribute.Int("regions.matched", len(ids)))
	return ids, nil
}

// Coordinates returns the records of every micro-region containing (x, y), in
// match order. matched is false when the point lies in no region, including
// when the coordinates cannot be parsed.
func (s *Service) Coordinates(ctx context.Context, x, y string) (records []domain.BulletinRecord, matched bool) {
	ctx, span := observability.StartSpan(ctx, "service.coordinates",
		attribute.String("point.x", x),
		attribute.String("point.y", y),
	)
	defer span.End()

	ids, err := s.Resolve(ctx, x, y)
	if err != nil {
		s.logger.Warn("invalid coordinates", "x", x, "y", y, "error", err)
		return nil, false
	}
	if len(ids) == 0 {
		return nil, false
	}

	records = []domain.BulletinRecord{}
	ix, err := s.bulletins(ctx)
	if err != nil {
		s.logger.Error("bulletin feed unavailable", "regions", ids, "error", err)
		return records, true
	}

	catalog := s.regions.Catalog()
	for _, id := range ids {
		rec, err := s.extract(ix, id, catalog)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, true
}

// Navigation returns the region tree restricted to regions with a bulletin.
func (s *Service) Navigation(ctx context.Context) *regions.Node {
	ctx, span := observability.StartSpan(ctx, "service.navigation")
	defer span.End()

	catalog := s.regions.Catalog()
	ix, err := s.bulletins(ctx)
	if err != nil {
		s.logger.Error("bulletin feed unavailable", "error", err)
		return regions.BuildTree(catalog, nil)
	}
	return regions.BuildTree(catalog, ix.Available())
}

// Advisory returns the ARPAV advisory. On failure only the credits are set.
func (s *Service) Advisory(ctx context.Context) domain.AdvisoryRecord {
	ctx, span := observability.StartSpan(ctx, "service.advisory")
	defer span.End()

	empty := domain.AdvisoryRecord{Credits: domain.ArpavCredits}

	data, err := s.arpav.Fetch(ctx)
	if err != nil {
		s.logger.Error("advisory feed unavailable", "error", err)
		return empty
	}
	rec, err := advisory.Parse(data)
	if err != nil {
		s.logger.Error("advisory feed unreadable", "error", err)
		return empty
	}
	return s.normalizer.Advisory(rec)
}

// Index lists the regions that currently have a bulletin, in catalog order.
func (s *Service) Index(ctx context.Context) Links {
	ctx, span := observability.StartSpan(ctx, "service.index")
	defer span.End()

	ix, err := s.bulletins(ctx)
	if err != nil {
		s.logger.Error("bulletin feed unavailable", "error", err)
		return Links{}
	}

	available := make(map[string]struct{})
	for _, id := range ix.Available() {
		available[id] = struct{}{}
	}

	var links Links
	catalog := s.regions.Catalog()
	for _, id := range catalog.IDs() {
		if _, ok := available[id]; !ok {
			continue
		}
		links.add(catalog.RegionName(id), RegionPath(id))
	}
	return links
}

// Snapshot extracts the records of every region with a bulletin, in catalog
// order. Unlike the query methods it reports upstream failures.
func (s *Service) Snapshot(ctx context.Context) ([]domain.BulletinRecord, error) {
	ctx, span := observability.StartSpan(ctx, "service.snapshot")
	defer span.End()

	ix, err := s.bulletins(ctx)
	if err != nil {
		return nil, err
	}

	available := make(map[string]struct{})
	for _, id := range ix.Available() {
		available[id] = struct{}{}
	}

	catalog := s.regions.Catalog()
	records := make([]domain.BulletinRecord, 0, len(available))
	for _, id := range catalog.IDs() {
		if _, ok := available[id]; !ok {
			continue
		}
		rec, err := s.extract(ix, id, catalog)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}
