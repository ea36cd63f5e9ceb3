package regions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nvdata-service/internal/geo"
	"github.com/couchcryptid/nvdata-service/internal/observability"
)

const (
	namesDir      = "micro-regions_names"
	boundariesDir = "micro-regions"
)

// Snapshot is an immutable view of the region data on disk.
type Snapshot struct {
	Catalog  *Catalog
	Features []geo.Feature
	LoadedAt time.Time
}

// Store serves the region catalog and boundary corpus to concurrent readers.
// A reload builds a complete new snapshot before swapping it in.
type Store struct {
	fsys    fs.FS
	lang    string
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a Store reading from fsys, which must contain the
// micro-regions and micro-regions_names directories.
func NewStore(fsys fs.FS, lang string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		fsys:    fsys,
		lang:    lang,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Load reads the catalog and corpus and replaces the current snapshot. On
// error the previous snapshot stays in place.
func (s *Store) Load() error {
	snap, err := s.read()
	if err != nil {
		s.metrics.RegionsReloads.WithLabelValues("error").Inc()
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.metrics.RegionsReloads.WithLabelValues("success").Inc()
	s.metrics.CatalogRegions.Set(float64(snap.Catalog.Len()))
	s.metrics.BoundaryFeatures.Set(float64(len(snap.Features)))
	s.logger.Info("region data loaded",
		"lang", s.lang,
		"regions", snap.Catalog.Len(),
		"features", len(snap.Features),
	)
	return nil
}

func (s *Store) read() (*Snapshot, error) {
	namesFS, err := fs.Sub(s.fsys, namesDir)
	if err != nil {
		return nil, fmt.Errorf("region names: %w", err)
	}
	catalog, err := LoadCatalog(namesFS, s.lang)
	if err != nil {
		return nil, err
	}

	boundariesFS, err := fs.Sub(s.fsys, boundariesDir)
	if err != nil {
		return nil, fmt.Errorf("region boundaries: %w", err)
	}
	features, err := geo.LoadCorpus(boundariesFS)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Catalog: catalog, Features: features, LoadedAt: s.clock.Now()}, nil
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Catalog returns the current catalog, or an empty one before the first Load.
func (s *Store) Catalog() *Catalog {
	if snap := s.Snapshot(); snap != nil {
		return snap.Catalog
	}
	return NewCatalog(nil)
}

// Features returns the current boundary corpus.
func (s *Store) Features() []geo.Feature {
	if snap := s.Snapshot(); snap != nil {
		return snap.Features
	}
	return nil
}

// Watch reloads the region data every interval until ctx is cancelled.
// Failed reloads are logged and keep the previous snapshot.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("region reload enabled", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := s.Load(); err != nil {
				s.logger.Warn("region reload failed, keeping previous data", "error", err)
			}
		}
	}
}

// CheckReadiness returns nil once a non-empty catalog has been loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	snap := s.Snapshot()
	if snap == nil {
		return errors.New("region data not loaded")
	}
	if snap.Catalog.Len() == 0 {
		return errors.New("region catalog is empty")
	}
	return nil
}
