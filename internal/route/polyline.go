// Package route holds the route-export utilities: the polyline encoder
// and GPX serializer that turn coordinate sequences into Strava's wire
// formats, and the loop generator that produces those sequences.
package route

import (
	"math"
	"strings"
)

// polylinePrecision is the fixed-point scale of the encoding. 1e5 is
// the scale Strava and Google Maps expect; the encoding is lossy below
// roughly one meter.
const polylinePrecision = 1e5

// Point is one coordinate of a route. Elevation is optional; nil means
// unknown.
type Point struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Elevation *float64 `json:"elevation,omitempty"`
}

// EncodePolyline encodes a path with Google's polyline algorithm:
// per-point integer deltas at 1e5 precision, zig-zag sign encoding,
// then 5-bit groups with a continuation bit, offset into printable
// ASCII. The previous-point state runs across the whole sequence, so
// each point encodes relative to its predecessor. Encode only; Strava
// decodes on its side.
func EncodePolyline(points []Point) string {
	var b strings.Builder
	var prevLat, prevLng int64

	for _, p := range points {
		lat := int64(math.Round(p.Lat * polylinePrecision))
		lng := int64(math.Round(p.Lng * polylinePrecision))

		encodeSigned(&b, lat-prevLat)
		encodeSigned(&b, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return b.String()
}

// encodeSigned writes one zig-zag-encoded value as 5-bit chunks, least
// significant first, each offset by 63.
func encodeSigned(b *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	b.WriteByte(byte(u + 63))
}
