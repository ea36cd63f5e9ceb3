package domain

import "errors"

var (
	// ErrUpstreamUnavailable means a feed could not be fetched or returned a non-200 status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUnknownRegion means no bulletin in the current snapshot covers the region.
	ErrUnknownRegion = errors.New("unknown region")
)
