package domain

import "strings"

const (
	elevationPrefix = "ElevationRange_"
	aspectPrefix    = "AspectRange_"

	// DirectionAbove and DirectionBelow are the decoded elevation directions.
	DirectionAbove = ">"
	DirectionBelow = "<"
)

// Elevation is a decoded elevation range reference.
type Elevation struct {
	Elevation string
	Direction string
}

// DecodeElevation splits an "ElevationRange_<digits><Hi|Lo>" reference into
// its elevation and direction. Input without the prefix is decoded as-is, and
// an empty token yields an empty elevation with direction "<".
func DecodeElevation(token string) Elevation {
	rest := strings.ReplaceAll(token, elevationPrefix, "")

	direction := DirectionBelow
	if len(rest) >= 2 && rest[len(rest)-2:] == "Hi" {
		direction = DirectionAbove
	}

	elevation := ""
	if len(rest) > 2 {
		elevation = rest[:len(rest)-2]
	}

	return Elevation{Elevation: elevation, Direction: direction}
}

// DecodeAspect strips the "AspectRange_" prefix from an aspect reference.
func DecodeAspect(token string) string {
	return strings.ReplaceAll(token, aspectPrefix, "")
}
