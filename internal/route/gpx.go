package route

import (
	"strconv"
	"strings"
	"time"
)

// GPXDocument describes one exportable track. The document is rendered
// to a string once; any change means rebuilding the whole string.
type GPXDocument struct {
	Name        string
	Description string
	Author      string
	Time        time.Time // zero value means "now" at render time
	Points      []Point
}

const gpxCreator = "runcoach"

// Render serializes the document as a UTF-8 GPX 1.1 string. The exact
// byte sequence is the upload payload, so the structure is fixed:
// declaration, gpx root with version/creator/namespace, metadata, one
// trk with one trkseg, one trkpt per point with an optional nested ele.
func (d GPXDocument) Render() string {
	timestamp := d.Time
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="` + gpxCreator + `" xmlns="http://www.topografix.com/GPX/1/1">` + "\n")

	b.WriteString("  <metadata>\n")
	b.WriteString("    <name>" + escapeXML(d.Name) + "</name>\n")
	if d.Description != "" {
		b.WriteString("    <desc>" + escapeXML(d.Description) + "</desc>\n")
	}
	if d.Author != "" {
		b.WriteString("    <author><name>" + escapeXML(d.Author) + "</name></author>\n")
	}
	b.WriteString("    <time>" + timestamp.UTC().Format(time.RFC3339) + "</time>\n")
	b.WriteString("  </metadata>\n")

	b.WriteString("  <trk>\n")
	b.WriteString("    <name>" + escapeXML(d.Name) + "</name>\n")
	b.WriteString("    <trkseg>\n")
	for _, p := range d.Points {
		b.WriteString(`      <trkpt lat="` + formatCoord(p.Lat) + `" lon="` + formatCoord(p.Lng) + `">`)
		if p.Elevation != nil {
			b.WriteString("<ele>" + strconv.FormatFloat(*p.Elevation, 'f', 1, 64) + "</ele>")
		}
		b.WriteString("</trkpt>\n")
	}
	b.WriteString("    </trkseg>\n")
	b.WriteString("  </trk>\n")
	b.WriteString("</gpx>\n")

	return b.String()
}

// ValidateGPX is a structural sniff-test: it checks for the required
// tags in order, nothing more. Deliberately not an XML parse; uploads
// go through Strava's real validation anyway.
func ValidateGPX(s string) bool {
	idx := 0
	for _, marker := range []string{"<?xml", "<gpx", "<trk>", "<trkseg>", "<trkpt"} {
		rel := strings.Index(s[idx:], marker)
		if rel < 0 {
			return false
		}
		idx += rel + len(marker)
	}
	return true
}

// xmlEscaper escapes the five XML entities in a single pass, so the
// ampersand in a produced entity is never itself re-escaped.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
