package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/couchcryptid/nvdata-service/internal/domain"
	"github.com/couchcryptid/nvdata-service/internal/observability"
)

// Feed source names, used as metric labels and log attributes.
const (
	SourceAineva = "aineva"
	SourceArpav  = "arpav"
)

// maxBodyBytes bounds how much of an upstream response is read. Larger
// responses are rejected rather than truncated.
const maxBodyBytes = 32 << 20

// ErrResponseTooLarge reports an upstream body over the size limit.
var ErrResponseTooLarge = errors.New("response too large")

// Client fetches a single upstream XML feed.
type Client struct {
	source     string
	url        string
	httpClient *http.Client
	maxBody    int64
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a client for the feed at url. Every fetch is bounded by timeout.
func NewClient(source, url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		source: source,
		url:    url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBody: maxBodyBytes,
		logger:  logger,
		metrics: metrics,
	}
}

// Source returns the feed name.
func (c *Client) Source() string {
	return c.source
}

// Fetch downloads the feed. Any failure, including a non-200 status, is
// returned wrapped around domain.ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	ctx, span := observability.StartSpan(ctx, "upstream.fetch",
		attribute.String("upstream.source", c.source),
	)
	defer span.End()

	start := time.Now()
	body, outcome, err := c.do(ctx)
	c.metrics.UpstreamDuration.WithLabelValues(c.source).Observe(time.Since(start).Seconds())
	c.metrics.UpstreamRequests.WithLabelValues(c.source, outcome).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("upstream fetch failed", "source", c.source, "outcome", outcome, "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("upstream.bytes", len(body)))
	return body, nil
}

func (c *Client) do(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, "error", fmt.Errorf("%w: create %s request: %w", domain.ErrUpstreamUnavailable, c.source, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "error", fmt.Errorf("%w: %s request: %w", domain.ErrUpstreamUnavailable, c.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "status", fmt.Errorf("%w: %s status %d", domain.ErrUpstreamUnavailable, c.source, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, "error", fmt.Errorf("%w: read %s body: %w", domain.ErrUpstreamUnavailable, c.source, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, "too_large", fmt.Errorf("%w: %s body exceeds %d bytes: %w", domain.ErrUpstreamUnavailable, c.source, c.maxBody, ErrResponseTooLarge)
	}
	return body, "success", nil
}
