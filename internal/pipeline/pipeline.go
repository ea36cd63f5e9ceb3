package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nvdata-service/internal/domain"
	"github.com/couchcryptid/nvdata-service/internal/observability"
)

// Snapshotter extracts the current record of every region with a bulletin.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]domain.BulletinRecord, error)
}

// Publisher writes a batch of records to the sink.
type Publisher interface {
	Publish(ctx context.Context, records []domain.BulletinRecord, publishedAt time.Time) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

// Pipeline periodically publishes a full snapshot of bulletin records.
type Pipeline struct {
	source   Snapshotter
	sink     Publisher
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
	interval time.Duration
	ready    atomic.Bool
}

// New creates a Pipeline that publishes every interval.
func New(source Snapshotter, sink Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Pipeline {
	return &Pipeline{
		source:   source,
		sink:     sink,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
	}
}

// CheckReadiness returns nil once at least one snapshot has been published,
// or an error describing why the publisher is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no snapshot published yet")
	}
	return nil
}

// Run publishes a snapshot immediately and then once per interval until the
// context is cancelled. Failed cycles are retried with exponential backoff
// capped at the interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("snapshot publisher started", "interval", p.interval)
	p.metrics.PublisherRunning.Set(1)
	defer p.metrics.PublisherRunning.Set(0)

	limit := min(maxBackoff, p.interval)
	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			p.logger.Info("snapshot publisher stopping", "reason", ctx.Err())
			return nil
		}

		wait := p.interval
		if err := p.publishSnapshot(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.metrics.PublishErrors.Inc()
			p.logger.Error("snapshot publish failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = retry.NextBackoff(backoff, limit)
		} else {
			backoff = initialBackoff
		}

		if !p.sleep(ctx, wait) {
			p.logger.Info("snapshot publisher stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// publishSnapshot runs one extract-publish cycle.
func (p *Pipeline) publishSnapshot(ctx context.Context) error {
	start := p.clock.Now()

	records, err := p.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := p.sink.Publish(ctx, records, p.clock.Now()); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	p.metrics.RecordsPublished.Add(float64(len(records)))
	p.metrics.SnapshotDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("snapshot published", "records", len(records))
	return nil
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-p.clock.After(d):
		return true
	}
}
